// Package api provides the REST API server for ambitus
package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Pietzcker/ambitus/pkg/midifile"
	"github.com/Pietzcker/ambitus/pkg/notation"
	"github.com/Pietzcker/ambitus/pkg/pitch"
	"github.com/Pietzcker/ambitus/pkg/scale"
)

// @title Ambitus API
// @version 1.0
// @description Builds diatonic scales and encodes them as Ambitus font glyphs
// @host localhost:8080
// @BasePath /api/v1

// ScaleRequest selects a scale and its range.
type ScaleRequest struct {
	Scale string `json:"scale" binding:"required" example:"dorian"`
	Start string `json:"start" binding:"required" example:"C4"`
	Stop  string `json:"stop" example:"C5"`
}

// GlyphRequest selects a scale and how to write it.
type GlyphRequest struct {
	ScaleRequest
	Clef       string  `json:"clef" example:"treble"`
	Key        string  `json:"key" example:"c"`
	Head       string  `json:"head" example:"q"`
	Stemless   bool    `json:"stemless"`
	Separator  *string `json:"separator" example:":"`
	Spacer     string  `json:"spacer"`
	Terminator *string `json:"terminator" example:":|"`
	Reverse    bool    `json:"reverse"`
}

// ScaleResponse lists the pitches of a scale.
type ScaleResponse struct {
	Scale   string   `json:"scale"`
	Pitches []string `json:"pitches"`
}

// GlyphResponse holds the encoded line and the notes left out of it.
type GlyphResponse struct {
	Pitches []string `json:"pitches"`
	Glyphs  string   `json:"glyphs"`
	Tokens  []string `json:"tokens"`
	Skipped []string `json:"skipped"`
}

type server struct {
	catalog *scale.Catalog
}

// NewRouter builds the gin engine serving the catalog.
func NewRouter(catalog *scale.Catalog) *gin.Engine {
	s := &server{catalog: catalog}
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/scales", s.listScales)
		v1.GET("/clefs", listClefs)
		v1.GET("/keys", listKeys)
		v1.POST("/scale", s.handleScale)
		v1.POST("/glyphs", s.handleGlyphs)
		v1.POST("/midi", s.handleMIDI)
		v1.POST("/render", handleRender)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int, catalog *scale.Catalog) error {
	return NewRouter(catalog).Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ambitus",
	})
}

// listScales godoc
// @Summary List scales
// @Description Returns every named interval pattern
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /api/v1/scales [get]
func (s *server) listScales(c *gin.Context) {
	scales := make([]gin.H, 0)
	for _, name := range s.catalog.Names() {
		p, _ := s.catalog.Lookup(name)
		scales = append(scales, gin.H{"name": name, "steps": p[:]})
	}
	c.JSON(http.StatusOK, gin.H{"scales": scales})
}

// listClefs godoc
// @Summary List clefs
// @Description Returns each clef with its glyph and writable range
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]string
// @Router /api/v1/clefs [get]
func listClefs(c *gin.Context) {
	clefs := make([]gin.H, 0)
	for _, clef := range notation.Clefs() {
		clefs = append(clefs, gin.H{
			"name":   clef.Name,
			"glyph":  clef.Glyph,
			"low":    clef.Low.String(),
			"high":   clef.High.String(),
			"middle": clef.Middle.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"clefs": clefs})
}

// listKeys godoc
// @Summary List key signatures
// @Description Returns each key name with its accidentals
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /api/v1/keys [get]
func listKeys(c *gin.Context) {
	keys := make([]gin.H, 0)
	for _, name := range notation.KeyNames() {
		k, _ := notation.LookupKey(name)
		letters := make([]string, len(k.Letters))
		for i, l := range k.Letters {
			letters[i] = l.String()
		}
		keys = append(keys, gin.H{"name": name, "polarity": k.Polarity.String(), "letters": letters})
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

func (s *server) buildScale(req ScaleRequest) ([]pitch.Pitch, error) {
	pattern, err := s.catalog.Lookup(req.Scale)
	if err != nil {
		return nil, err
	}
	start, err := pitch.Parse(req.Start)
	if err != nil {
		return nil, err
	}
	stop := scale.DefaultStop(start)
	if req.Stop != "" {
		if stop, err = pitch.Parse(req.Stop); err != nil {
			return nil, err
		}
	}
	return scale.BuildChecked(pattern, start, stop)
}

func pitchNames(pitches []pitch.Pitch) []string {
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.String()
	}
	return names
}

// handleScale godoc
// @Summary Build a scale
// @Description Returns the pitches of a scale between start and stop
// @Tags scale
// @Accept json
// @Produce json
// @Param request body ScaleRequest true "Scale and range"
// @Success 200 {object} ScaleResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/scale [post]
func (s *server) handleScale(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	notes, err := s.buildScale(req)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, ScaleResponse{Scale: strings.ToLower(req.Scale), Pitches: pitchNames(notes)})
}

func formatterFor(req GlyphRequest) (*notation.Formatter, error) {
	f := notation.NewFormatter()
	if req.Clef != "" {
		clef, err := notation.LookupClef(req.Clef)
		if err != nil {
			return nil, err
		}
		f.Clef = clef
	}
	if req.Key != "" {
		key, err := notation.LookupKey(req.Key)
		if err != nil {
			return nil, err
		}
		f.Key = key
	}
	if req.Head != "" {
		head, err := notation.ParseNoteHead(req.Head)
		if err != nil {
			return nil, err
		}
		f.Head = head
	}
	f.Stemless = req.Stemless
	if req.Separator != nil {
		f.Separator = *req.Separator
	}
	if req.Terminator != nil {
		f.Terminator = *req.Terminator
	}
	f.Spacer = req.Spacer
	f.Reverse = req.Reverse
	return f, nil
}

// handleGlyphs godoc
// @Summary Encode a scale as glyphs
// @Description Builds a scale and renders it for a clef and key signature. Notes outside the clef are listed in skipped.
// @Tags scale
// @Accept json
// @Produce json
// @Param request body GlyphRequest true "Scale, range and formatting"
// @Success 200 {object} GlyphResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/glyphs [post]
func (s *server) handleGlyphs(c *gin.Context) {
	var req GlyphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	f, err := formatterFor(req)
	if err != nil {
		badRequest(c, err)
		return
	}
	notes, err := s.buildScale(req.ScaleRequest)
	if err != nil {
		badRequest(c, err)
		return
	}
	respondGlyphs(c, f, notes)
}

func respondGlyphs(c *gin.Context, f *notation.Formatter, notes []pitch.Pitch) {
	tokens, skipped, err := f.Tokens(notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GlyphResponse{
		Pitches: pitchNames(notes),
		Glyphs:  f.Join(tokens),
		Tokens:  tokens,
		Skipped: pitchNames(skipped),
	})
}

// handleMIDI godoc
// @Summary Export a scale as MIDI
// @Description Builds a scale and returns it as a Standard MIDI File, one quarter note per pitch
// @Tags scale
// @Accept json
// @Produce audio/midi
// @Param request body ScaleRequest true "Scale and range"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/midi [post]
func (s *server) handleMIDI(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	notes, err := s.buildScale(req)
	if err != nil {
		badRequest(c, err)
		return
	}
	data, err := midifile.NewExporter().Export(notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.mid", strings.ToLower(req.Scale), notes[0]))
	c.Data(http.StatusOK, "audio/midi", data)
}

// handleRender godoc
// @Summary Encode a MIDI file as glyphs
// @Description Upload a MIDI file; its notes are spelled for the key and encoded for the clef
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI file"
// @Param clef query string false "Clef (default: treble)"
// @Param key query string false "Key signature (default: c)"
// @Param head query string false "Note head (default: q)"
// @Success 200 {object} GlyphResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/render [post]
func handleRender(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	f, err := formatterFor(GlyphRequest{
		Clef: c.Query("clef"),
		Key:  c.Query("key"),
		Head: c.Query("head"),
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	midiNotes, err := midifile.ReadNotes(data)
	if err != nil {
		badRequest(c, err)
		return
	}
	notes, err := midifile.Spell(midiNotes, f.Key)
	if err != nil {
		badRequest(c, err)
		return
	}
	respondGlyphs(c, f, notes)
}
