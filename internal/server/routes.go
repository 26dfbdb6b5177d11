package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/plexus/internal/portfolio"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Profile.Name}}</title>
<style>
body { margin: 0; background: #0a0a0a; color: #fff; font-family: monospace; }
#field { position: absolute; top: 0; left: 0; z-index: 0; }
main { position: relative; z-index: 1; max-width: 48rem; margin: 0 auto; padding: 4rem 1rem; }
a { color: #00ffff; }
#clock { color: #666; }
</style>
</head>
<body>
<img id="field" src="/field.svg" alt="">
<main>
<h1>{{.Profile.Name}}</h1>
<p id="clock">{{.Clock}}</p>
<section id="about">{{.About}}</section>
<section id="projects">
<h2>Projects</h2>
{{range .Profile.Projects}}<article data-category="{{.Categories}}"><h3>{{.Title}}</h3><p>{{.Summary}}</p></article>
{{end}}
</section>
<section id="contact"><a href="mailto:{{.Profile.Email}}">{{.Profile.Email}}</a></section>
</main>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
const img = document.getElementById("field");
ws.onopen = () => ws.send(JSON.stringify({type: "resize", width: innerWidth, height: document.body.scrollHeight}));
ws.onmessage = (e) => { const m = JSON.parse(e.data); if (m.type === "frame") img.src = "/field.svg?f=" + m.stats.frame; };
addEventListener("mousemove", (e) => ws.send(JSON.stringify({type: "pointer", x: e.clientX, y: e.clientY + scrollY})));
</script>
</body>
</html>
`))

func (s *Server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(indexTemplate)

	r.GET("/", s.handleIndex)
	r.GET("/field.svg", s.handleSVG)
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	api.GET("/field", s.handleField)
	api.GET("/projects", s.handleProjects)
	api.GET("/time", s.handleTime)
	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Profile": s.profile,
		"About":   s.about,
		"Clock":   s.clock.String(),
	})
}

func (s *Server) handleSVG(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", []byte(s.SVG()))
}

func (s *Server) handleField(c *gin.Context) {
	c.JSON(http.StatusOK, s.Snapshot())
}

func (s *Server) handleProjects(c *gin.Context) {
	filter := c.DefaultQuery("filter", portfolio.FilterAll)
	c.JSON(http.StatusOK, gin.H{
		"filter":   filter,
		"projects": portfolio.Filter(s.profile.Projects, filter),
	})
}

func (s *Server) handleTime(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"time": s.clock.String(),
		"unix": time.Now().Unix(),
	})
}
