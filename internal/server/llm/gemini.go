package llm

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the Google Generative Language generateContent endpoint.
type Gemini struct {
	apiKey string
	model  string
	opts   options
}

func NewGemini(apiKey, model string, opts ...Option) *Gemini {
	return &Gemini{apiKey: apiKey, model: model, opts: buildOptions(geminiBaseURL, opts)}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	var in geminiRequest
	in.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	in.GenerationConfig.ResponseMimeType = "application/json"

	endpoint := strings.TrimRight(g.opts.baseURL, "/") + "/models/" + url.PathEscape(g.model) + ":generateContent"
	header := http.Header{}
	header.Set("x-goog-api-key", g.apiKey)

	var out geminiResponse
	if err := postJSON(ctx, g.opts.httpClient, "gemini", endpoint, header, in, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return b.String(), nil
}
