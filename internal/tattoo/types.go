// Package tattoo defines the generation domain types and the HTTP
// client for the tattoo generation backend.
package tattoo

// Result is one generated design as returned by the backend. Immutable
// once created.
type Result struct {
	Idea        string `json:"idea,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// HasImage reports whether the result carries image data.
func (r Result) HasImage() bool {
	return r.ImageBase64 != ""
}

// GenerateRequest describes a first-pass generation: the user's photo
// plus the design parameters from the form.
type GenerateRequest struct {
	Photo     []byte
	PhotoName string
	Style     string
	Theme     string
	ColorMode string
	Placement string
}

// AlterRequest asks the backend to modify an already-generated design
// based on natural-language feedback. The image must be raw base64,
// without a data-URL prefix.
type AlterRequest struct {
	Feedback             string `json:"feedback"`
	Style                string `json:"style"`
	Theme                string `json:"theme"`
	ColorMode            string `json:"color_mode"`
	Size                 string `json:"size"`
	GeneratedImageBase64 string `json:"generated_image_base64"`
}

// apiResponse is the backend's wire shape: either a result or an
// in-band error.
type apiResponse struct {
	Idea        string `json:"idea"`
	ImageBase64 string `json:"image_base64"`
	Error       string `json:"error"`
}
