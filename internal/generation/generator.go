// Package generation is the in-process tattoo generation backend. It
// ports the original FastAPI service onto the Gemini SDK and exposes
// the same HTTP contract, so the studio can run self-contained when an
// API key is configured.
package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

// DefaultModel is the image-capable Gemini model used for generation.
const DefaultModel = "gemini-2.5-flash-image"

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 3 * time.Minute

// modelCaller is the seam over the genai client, narrow enough to fake
// in tests.
type modelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator produces and refines tattoo designs.
type Generator struct {
	models  modelCaller
	model   string
	timeout time.Duration
}

// Config for NewGenerator.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewGenerator builds a Generator backed by the Gemini API.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return newGenerator(client.Models, cfg), nil
}

func newGenerator(models modelCaller, cfg Config) *Generator {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{models: models, model: model, timeout: timeout}
}

// generatePrompt builds the designer prompt for a first pass. The
// wording keeps the overlay-only constraint: the model must use the
// provided photo as the base and only add the tattoo.
func generatePrompt(style, theme, colorMode, placement string) string {
	return fmt.Sprintf(`You are a professional tattoo designer.
USING ONLY THE IMAGE PROVIDED, design a %s %s tattoo with the theme %q.
It should be appropriate for a %s placement on the provided body photo.
Keep the original photo intact and only overlay the tattoo realistically.
You may only use the image provided as a base.
Also describe the final design clearly so it can be shown to the user.`,
		colorMode, style, theme, placement)
}

// alterPrompt builds the refinement prompt from the user's feedback and
// the original design context.
func alterPrompt(req tattoo.AlterRequest) string {
	return fmt.Sprintf(`You are a professional tattoo designer refining an existing design.
The attached image is the current %s %s tattoo with the theme %q, placed on the %s.
Apply this feedback to the design: %s
Modify only what the feedback asks for and keep everything else, including the underlying photo, intact.
Also describe the updated design clearly so it can be shown to the user.`,
		req.ColorMode, req.Style, req.Theme, req.Size, req.Feedback)
}

// Generate runs a first-pass design over the uploaded photo.
func (g *Generator) Generate(ctx context.Context, photo []byte, mimeType, style, theme, colorMode, placement string) (tattoo.Result, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(generatePrompt(style, theme, colorMode, placement)),
		genai.NewPartFromBytes(photo, mimeType),
	}
	return g.call(ctx, parts)
}

// Alter refines the previously generated design per the feedback.
func (g *Generator) Alter(ctx context.Context, req tattoo.AlterRequest) (tattoo.Result, error) {
	image, err := base64.StdEncoding.DecodeString(req.GeneratedImageBase64)
	if err != nil {
		return tattoo.Result{}, fmt.Errorf("decoding generated image: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(alterPrompt(req)),
		genai.NewPartFromBytes(image, "image/png"),
	}
	return g.call(ctx, parts)
}

func (g *Generator) call(ctx context.Context, parts []*genai.Part) (tattoo.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return tattoo.Result{}, fmt.Errorf("gemini generation failed: %w", err)
	}

	return parseResponse(resp)
}

// parseResponse scans the candidate parts: text parts concatenate into
// the idea, the first inline-data part becomes the image.
func parseResponse(resp *genai.GenerateContentResponse) (tattoo.Result, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return tattoo.Result{}, fmt.Errorf("empty model response")
	}

	var idea strings.Builder
	var image []byte
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			idea.WriteString(part.Text)
		}
		if image == nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			image = part.InlineData.Data
		}
	}

	if image == nil {
		return tattoo.Result{}, fmt.Errorf("no image in model response")
	}

	return tattoo.Result{
		Idea:        strings.TrimSpace(idea.String()),
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	}, nil
}
