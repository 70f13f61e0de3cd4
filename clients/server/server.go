// Package server provides the HTTP API for composing parrots.
package server

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"

	"github.com/xob0t/GoParrot/pkg/config"
	"github.com/xob0t/GoParrot/pkg/generator"
	"github.com/xob0t/GoParrot/pkg/media"
	"github.com/xob0t/GoParrot/pkg/parrot"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
	logger = golog.Child("[server]")
)

// maxUpload bounds overlay uploads.
const maxUpload = 10 << 20

type srv struct {
	catalog *config.Catalog
	loader  parrot.OverlayLoader
	assets  *assetManager
}

// New builds the API router. Uploaded assets are served to loader through
// their ids, so a request may name an asset id or an http(s) URL as overlay
// source. Local paths are refused.
func New(catalog *config.Catalog, loader *media.Loader) *gin.Engine {
	s := &srv{
		catalog: catalog,
		assets:  newAssetManager(),
	}
	s.loader = loader.WithAssets(s.assets.lookup).WithoutFiles()
	return s.routes()
}

func (s *srv) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api")
	api.GET("/parrots", s.handleListParrots)
	api.POST("/parrot", s.handleParrot)
	api.POST("/upload/overlay", s.handleUploadOverlay)
	api.GET("/assets", s.handleListAssets)
	api.GET("/assets/:id", s.handleGetAsset)
	api.DELETE("/assets/:id", s.handleDeleteAsset)
	return r
}

// RunServe starts the API server.
func RunServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	root := fs.String("parrots", "./parrots", "Directory of parrot characters")
	timeout := fs.Duration("timeout", 15*time.Second, "Timeout for fetching overlay URLs")
	fs.Parse(args)

	gin.SetMode(gin.ReleaseMode)
	catalog := config.NewCatalog(*root)
	defer catalog.Close()

	r := New(catalog, media.NewLoader(*timeout))
	addr := ":" + strconv.Itoa(*port)
	logger.Infof("GoParrot API → http://localhost%s (parrots from %s)", addr, *root)
	return r.Run(addr)
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Debugf("%s %s %d %s", ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start))
	}
}

// ── Parrots ──

type parrotInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Frames int    `json:"frames"`
}

func (s *srv) handleListParrots(ctx *gin.Context) {
	list := s.catalog.List()
	out := make([]parrotInfo, 0, len(list))
	for _, p := range list {
		out = append(out, parrotInfo{Name: p.Name, Width: p.Width, Height: p.Height, Frames: p.Frames})
	}
	writeJSON(ctx, http.StatusOK, out)
}

type parrotRequest struct {
	Parrot   string              `json:"parrot"`
	Colors   []string            `json:"colors"`
	Delay    int                 `json:"delay"`
	Format   string              `json:"format"`
	Overlays []generator.Overlay `json:"overlays"`
}

func (s *srv) handleParrot(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		abortError(ctx, http.StatusBadRequest, err)
		return
	}
	var req parrotRequest
	if err := json.Unmarshal(body, &req); err != nil {
		abortError(ctx, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Parrot == "" {
		req.Parrot = "parrot"
	}

	p, err := s.catalog.Get(req.Parrot)
	if err != nil {
		abortError(ctx, statusFor(err), err)
		return
	}

	format := req.Format
	if format == "" {
		format = media.FormatGIF
	}
	var buf bytes.Buffer
	res, err := generator.GenerateToWriter(ctx.Request.Context(), &buf, format, generator.Config{
		Parrot:   p,
		Colors:   req.Colors,
		Delay:    req.Delay,
		Overlays: req.Overlays,
		Loader:   s.loader,
	})
	if err != nil {
		abortError(ctx, statusFor(err), err)
		return
	}

	ctx.Header("X-Skipped-Frames", strconv.Itoa(res.Skipped))
	ctx.Header("X-Frames", strconv.Itoa(res.Frames))
	ctx.Data(http.StatusOK, media.ContentType(format), buf.Bytes())
}

// ── Assets ──

func (s *srv) handleUploadOverlay(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		abortError(ctx, http.StatusBadRequest, errors.New("no file"))
		return
	}
	if header.Size > maxUpload {
		abortError(ctx, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds %d bytes", maxUpload))
		return
	}
	file, err := header.Open()
	if err != nil {
		abortError(ctx, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUpload))
	if err != nil {
		abortError(ctx, http.StatusBadRequest, err)
		return
	}
	if _, err := media.Decode(header.Filename, data); err != nil {
		abortError(ctx, http.StatusUnprocessableEntity, err)
		return
	}

	mimeType := mime.TypeByExtension(filepath.Ext(header.Filename))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	a := s.assets.add(header.Filename, data, mimeType)
	logger.Debugf("stored overlay %s (%s, %d bytes)", a.ID, a.Name, a.Size)

	writeJSON(ctx, http.StatusOK, map[string]string{
		"id":   a.ID,
		"name": a.Name,
		"url":  "/api/assets/" + a.ID,
	})
}

func (s *srv) handleListAssets(ctx *gin.Context) {
	writeJSON(ctx, http.StatusOK, s.assets.listAll())
}

func (s *srv) handleGetAsset(ctx *gin.Context) {
	a, ok := s.assets.get(ctx.Param("id"))
	if !ok {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	ctx.Data(http.StatusOK, a.Mime, a.data)
}

func (s *srv) handleDeleteAsset(ctx *gin.Context) {
	id := ctx.Param("id")
	if !s.assets.remove(id) {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	writeJSON(ctx, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// ── Helpers ──

func statusFor(err error) int {
	switch {
	case errors.Is(err, parrot.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, parrot.ErrLoad), errors.Is(err, parrot.ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortError(ctx *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	} else {
		logger.Warnf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	ctx.Abort()
	ctx.Data(status, "application/json; charset=utf-8", body)
}

func writeJSON(ctx *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		abortError(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.Data(status, "application/json; charset=utf-8", body)
}
