// Package ai structures raw resume text into a candidate record through an
// OpenAI-compatible chat completions endpoint. Without an API key the parser
// degrades to a deterministic offline heuristic so the rest of the dossier
// workflow keeps working.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RomRom16/dossierfortil/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrServiceUnavailable wraps transport or upstream failures of the
	// structuring service.
	ErrServiceUnavailable = errors.New("cv structuring service unavailable")
	// ErrMalformedResponse marks a completion that was not the expected JSON.
	ErrMalformedResponse = errors.New("cv structuring response malformed")
)

// Record is the structured form of a resume. Field names match the JSON the
// model is instructed to emit.
type Record struct {
	FullName             string             `json:"full_name"`
	Email                string             `json:"email"`
	Phone                string             `json:"phone"`
	Roles                []string           `json:"roles"`
	CandidateDescription string             `json:"candidate_description"`
	GeneralExpertises    []string           `json:"general_expertises"`
	Tools                []string           `json:"tools"`
	Experiences          []ExperienceRecord `json:"experiences"`
	Educations           []EducationRecord  `json:"educations"`
}

type ExperienceRecord struct {
	Company              string   `json:"company"`
	Location             string   `json:"location"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	JobTitle             string   `json:"job_title"`
	Sector               string   `json:"sector"`
	Context              string   `json:"context"`
	Project              string   `json:"project"`
	Expertises           []string `json:"expertises"`
	ToolsUsed            []string `json:"tools_used"`
	Responsibilities     string   `json:"responsibilities"`
	TechnicalEnvironment string   `json:"technical_environment"`
}

// EducationRecord keeps Year as a string because models return both "2021"
// and 2021; the usecase coerces it.
type EducationRecord struct {
	DegreeOrCertification string          `json:"degree_or_certification"`
	Institution           string          `json:"institution"`
	Year                  json.RawMessage `json:"year"`
}

// YearValue returns the year as an int when it can be read as one.
func (e EducationRecord) YearValue() *int {
	if len(e.Year) == 0 || string(e.Year) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(e.Year, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(e.Year, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
			return &n
		}
	}
	return nil
}

const systemPrompt = `You are a resume parsing engine. Extract the candidate data from the resume text and answer with a single JSON object, nothing else, using exactly this shape:
{
  "full_name": string,
  "email": string,
  "phone": string,
  "roles": [string],
  "candidate_description": string,
  "general_expertises": [string],
  "tools": [string],
  "experiences": [{
    "company": string,
    "location": string,
    "start_date": string,
    "end_date": string,
    "job_title": string,
    "sector": string,
    "context": string,
    "project": string,
    "expertises": [string],
    "tools_used": [string],
    "responsibilities": string,
    "technical_environment": string
  }],
  "educations": [{
    "degree_or_certification": string,
    "institution": string,
    "year": number or null
  }]
}
Keep the resume's original language. Use "" for unknown strings and [] for unknown lists. Dates are free-form strings as written in the resume.`

type Parser struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewParser builds a parser from configuration. With no API key the returned
// parser runs offline.
func NewParser(cfg config.AIConfig) *Parser {
	p := &Parser{model: cfg.Model, timeout: cfg.Timeout}
	if p.timeout <= 0 {
		p.timeout = 2 * time.Minute
	}

	if cfg.APIKey != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			cc.BaseURL = cfg.BaseURL
		}
		p.client = openai.NewClientWithConfig(cc)
	}
	return p
}

// Structure turns resume text into a Record. The same text always yields the
// same record when running offline.
func (p *Parser) Structure(ctx context.Context, text string) (Record, error) {
	if p.client == nil {
		return fallbackRecord(text), nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return Record{}, fmt.Errorf("%w: empty completion", ErrMalformedResponse)
	}

	var rec Record
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return normalize(rec), nil
}

// fallbackRecord derives a minimal record without the model: the first
// non-blank line is taken as the name, every list stays empty.
func fallbackRecord(text string) Record {
	fullName := "Candidat"
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			fullName = s
			break
		}
	}
	return normalize(Record{FullName: fullName})
}

// normalize replaces nil lists with empty ones so callers and JSON encoding
// never see null arrays.
func normalize(rec Record) Record {
	if rec.Roles == nil {
		rec.Roles = []string{}
	}
	if rec.GeneralExpertises == nil {
		rec.GeneralExpertises = []string{}
	}
	if rec.Tools == nil {
		rec.Tools = []string{}
	}
	if rec.Experiences == nil {
		rec.Experiences = []ExperienceRecord{}
	}
	if rec.Educations == nil {
		rec.Educations = []EducationRecord{}
	}
	for i := range rec.Experiences {
		if rec.Experiences[i].Expertises == nil {
			rec.Experiences[i].Expertises = []string{}
		}
		if rec.Experiences[i].ToolsUsed == nil {
			rec.Experiences[i].ToolsUsed = []string{}
		}
	}
	return rec
}
