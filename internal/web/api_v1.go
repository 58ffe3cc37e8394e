package web

import (
	"errors"
	"image"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/wordsolverx/postermaker/internal/indexing"
	"github.com/wordsolverx/postermaker/internal/poster"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/theme"
)

// dateParam is the layout of the ?date= query parameter.
const dateParam = "2006-01-02"

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type topicResponse struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Accent string `json:"accent"`
	Icon   string `json:"icon"`
}

// API renders posters on demand for the preview UI.
type API struct {
	Engine   *poster.Engine
	BaseURL  string
	Location *time.Location
	Logger   *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *API) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *API) today() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	loc := a.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) topics(c *gin.Context) {
	all := theme.All()
	out := make([]topicResponse, 0, len(all))
	for _, t := range all {
		out = append(out, topicResponse{
			Key:    t.Key,
			Name:   t.Name,
			Start:  render.Hex(t.Start),
			End:    render.Hex(t.End),
			Accent: render.Hex(t.Accent),
			Icon:   render.VariantFor(t.Key).String(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// poster serves GET /poster/:kind/:topic?date=&width=&link=&direction=&color=
func (a *API) poster(c *gin.Context) {
	kind, err := poster.ParseKind(c.Param("kind"))
	if err != nil {
		writeAPIError(c, http.StatusNotFound, "unknown_kind", err.Error())
		return
	}
	topic := c.Param("topic")

	day := a.today()
	if raw := c.Query("date"); raw != "" {
		day, err = time.ParseInLocation(dateParam, raw, day.Location())
		if err != nil {
			writeAPIError(c, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
	}

	req := poster.Request{Topic: topic, Date: indexing.DisplayDate(day), Kind: kind}
	if raw := c.Query("direction"); raw != "" {
		dir, err := render.ParseDirection(raw)
		if err != nil {
			writeAPIError(c, http.StatusBadRequest, "invalid_direction", err.Error())
			return
		}
		req.Direction = &dir
	}
	if raw := c.Query("color"); raw != "" {
		primary, err := render.ParseHex(raw)
		if err != nil {
			writeAPIError(c, http.StatusBadRequest, "invalid_color", err.Error())
			return
		}
		req.Gradient = poster.PrimaryGradient(primary)
	}
	if link, _ := strconv.ParseBool(c.Query("link")); link {
		req.Link = indexing.Permalink(a.BaseURL, topic, day)
	}

	width := 0
	if raw := c.Query("width"); raw != "" {
		width, err = strconv.Atoi(raw)
		if err != nil || width <= 0 {
			writeAPIError(c, http.StatusBadRequest, "invalid_width", "width must be a positive integer")
			return
		}
	}

	res, err := a.Engine.Render(c.Request.Context(), req)
	if err != nil {
		a.logger().Error("render failed", "topic", topic, "kind", kind.String(), "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, poster.ErrFontTimeout) {
			status = http.StatusGatewayTimeout
		}
		writeAPIError(c, status, "render_failed", err.Error())
		return
	}

	var img image.Image = res.Image
	if width > 0 && width < img.Bounds().Dx() {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	data, err := poster.Encode(img)
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	if !res.KnownTopic {
		c.Header("X-Poster-Fallback-Topic", res.Theme.Key)
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

func writeAPIError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apiError{Error: code, Message: message})
}
