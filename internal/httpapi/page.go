package httpapi

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>Weather</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 48rem; }
    #loading-bar { height: 3px; background: #3b82f6; width: 0; transition: width .3s; }
    #loading-bar.active { width: 100%; }
    .alert { background: #fee2e2; border: 1px solid #fca5a5; padding: .5rem 1rem; margin: 1rem 0; }
    .current-weather { display: flex; gap: 1rem; align-items: center; }
    .forecast { display: grid; grid-template-columns: repeat(auto-fill, minmax(9rem, 1fr)); gap: .75rem; margin-top: 1.5rem; }
    .forecast-day { border: 1px solid #e5e7eb; border-radius: .5rem; padding: .5rem; }
  </style>
</head>
<body>
  <div id="loading-bar"{{if .Loading}} class="active"{{end}}></div>
  <form id="search-form" method="post" action="/search">
    <input id="city-input" name="city" type="text" placeholder="City" autocomplete="off"/>
    <button type="submit">Search</button>
  </form>
  <div id="alerts">{{range .Alerts}}<div class="alert" role="alert">{{.}}</div>{{end}}</div>
  <div id="weather-container">{{template "surface" .Doc}}</div>
  <script>
    (function () {
      var form = document.getElementById("search-form");
      var input = document.getElementById("city-input");
      var bar = document.getElementById("loading-bar");
      var container = document.getElementById("weather-container");
      var alerts = document.getElementById("alerts");

      function refreshSurface() {
        fetch("/surface", { credentials: "same-origin" })
          .then(function (res) { return res.text(); })
          .then(function (html) { container.innerHTML = html; });
      }

      function showAlerts(list) {
        alerts.innerHTML = "";
        (list || []).forEach(function (msg) {
          var el = document.createElement("div");
          el.className = "alert";
          el.setAttribute("role", "alert");
          el.textContent = msg;
          alerts.appendChild(el);
        });
      }

      function connect() {
        var proto = location.protocol === "https:" ? "wss://" : "ws://";
        var ws = new WebSocket(proto + location.host + "/ws");
        ws.onmessage = function (msg) {
          var ev = JSON.parse(msg.data);
          var data = ev.data || {};
          if (ev.type === "loading") {
            bar.classList.toggle("active", !!data.active);
          } else if (ev.type === "surface.replaced") {
            refreshSurface();
          } else if (ev.type === "icon.swapped") {
            var img = container.querySelector('[data-icon-idx="' + data.slot + '"] img');
            if (img) {
              img.src = data.src;
              img.setAttribute("data-icon-category", data.category);
            }
          }
        };
        ws.onclose = function () { setTimeout(connect, 2000); };
      }

      form.addEventListener("submit", function (e) {
        e.preventDefault();
        var body = new URLSearchParams();
        body.set("city", input.value);
        fetch("/search", {
          method: "POST",
          credentials: "same-origin",
          headers: { "Accept": "application/json" },
          body: body
        })
          .then(function (res) { return res.json(); })
          .then(function (out) {
            showAlerts(out.alerts);
            if (out.alerts && out.alerts.length) { window.alert(out.alerts.join("\n")); }
            refreshSurface();
          });
      });

      connect();
    })();
  </script>
</body>
</html>
`
