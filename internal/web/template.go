package web

const pageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>cantwait</title>
  {{if .ShareDescription}}
  <meta name="description" content="{{.ShareDescription}}">
  <meta property="og:description" content="{{.ShareDescription}}">
  {{end}}
  <style>
    :root { --accent: #1976d2; --bad: #b00020; --muted: #666; --line: #e0e0e0; }
    * { box-sizing: border-box; }
    body { font: 16px/1.4 system-ui, sans-serif; margin: 0 auto; padding: 32px 20px; max-width: 720px; }
    h1 { font-size: 1.4em; margin: 0 0 20px; }
    .err { color: var(--bad); background: #fdecee; border-left: 4px solid var(--bad); padding: 8px 12px; margin: 16px 0; }
    .err div + div { margin-top: 4px; }
    .card { border: 1px solid var(--line); border-radius: 8px; padding: 20px 16px; margin: 20px 0; }
    .mono { font-family: ui-monospace, Menlo, Consolas, monospace; }
    .hint { color: var(--muted); font-size: 0.85em; }
    footer { margin-top: 48px; color: var(--muted); font-size: 0.8em; text-align: right; }

    .field { display: flex; align-items: center; gap: 8px; margin-bottom: 10px; }
    .field label { width: 80px; color: #333; }
    .field input[type="text"] { flex: 1; max-width: 320px; padding: 7px 9px; font: inherit; border: 1px solid #bbb; border-radius: 4px; }
    .field input:focus { outline: 2px solid var(--accent); outline-offset: -1px; }
    .field.has-error input { border-color: var(--bad); background: #fff5f5; }
    .field button { padding: 4px 9px; background: none; border: 1px solid #bbb; border-radius: 4px; cursor: pointer; }
    .form-actions { display: flex; gap: 8px; margin-top: 16px; }
    .form-actions button { padding: 8px 18px; font: inherit; border-radius: 4px; cursor: pointer; }
    .form-actions button.primary { background: var(--accent); color: #fff; border: 1px solid var(--accent); }
    .form-actions button.secondary { background: #fff; border: 1px solid #bbb; }

    .markers { position: relative; height: 20px; margin: 0 12px; }
    .marker { position: absolute; transform: translateX(-50%); font-size: 0.85em; font-weight: 600; color: var(--accent); }
    .bar { height: 24px; background: #eee; border-radius: 6px; overflow: hidden; }
    .bar-fill { height: 100%; transition: width 0.5s; }
    .bar-fill.info { background: var(--accent); }
    .bar-fill.warning { background: #f9a825; }
    .bar-fill.success { background: #2e7d32; }
    .percent { margin-top: 6px; font-weight: 600; }
    .events { margin-top: 16px; }
    .events div { padding: 6px 0; border-top: 1px solid #eee; }
    .past { color: #2e7d32; }
  </style>
</head>
<body>
  <form method="POST" action="/calc">
    <h1>Events</h1>
    {{$canDelete := .CanDelete}}
    {{range .Inputs}}
    <div class="field{{if .Invalid}} has-error{{end}}">
      <label for="e{{.Number}}">Event {{.Number}}</label>
      <input id="e{{.Number}}" name="e" type="text" value="{{.Value}}" placeholder="2024-06-01T09:00" autocomplete="off">
      {{if $canDelete}}<button type="submit" name="action" value="delete-{{.Number}}" aria-label="Delete event {{.Number}}">✕</button>{{end}}
    </div>
    {{end}}
    <div class="hint">Dates such as 2024-06-01, 2024/06/01, June 1, 2024 or 2024-06-01T09:00:00+02:00</div>

    <div class="form-actions">
      <button type="submit" class="primary" name="action" value="go">Count down</button>
      <button type="submit" class="secondary" name="action" value="add">Add event</button>
    </div>
  </form>

  {{if .Errors}}<div class="err">{{range .Errors}}<div>{{.}}</div>{{end}}</div>{{end}}

  {{if .Waiting}}<div class="card hint">Enter at least two events to start the countdown.</div>{{end}}

  {{with .Snapshot}}
    <div class="card">
      <div class="markers">
        {{range .Markers}}<span class="marker" style="left: {{.Left}}%">{{.Number}}</span>{{end}}
      </div>
      <div class="bar"><div id="bar-fill" class="bar-fill {{.Phase}}" style="width: {{.Width}}%"></div></div>
      <div id="percent" class="percent mono">{{.Percent}}</div>
      <div class="events">
        {{range .Events}}<div><b>Event {{.Number}}</b> <span id="event-{{.Number}}" class="{{if .Past}}past{{end}}">{{.Text}}.</span></div>{{end}}
      </div>
    </div>
  {{end}}

  {{if .Query}}
  <script>
(function() {
  var query = {{.Query}};
  var refresh = {{.RefreshMs}};
  var fill = document.getElementById('bar-fill');
  var percent = document.getElementById('percent');

  function update() {
    fetch('/api/snapshot?' + query)
      .then(function(r) { return r.json(); })
      .then(function(sum) {
        if (!sum.snapshot) return;
        var p = sum.percent.toFixed(2);
        fill.style.width = p + '%';
        fill.className = 'bar-fill ' + ({pending: 'warning', running: 'info', done: 'success'})[sum.phase];
        percent.textContent = p + '%';
        sum.snapshot.events.forEach(function(ev) {
          var el = document.getElementById('event-' + ev.number);
          if (!el) return;
          el.textContent = ev.text + '.';
          el.className = ev.past ? 'past' : '';
        });
      })
      .catch(function() {});
  }
  setInterval(update, refresh);
})();
  </script>
  {{end}}

  <footer>cantwait v{{.Version}}</footer>
</body>
</html>`
