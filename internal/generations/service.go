package generations

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-forge/internal/compile"
	"resume-forge/internal/extraction"
	"resume-forge/internal/shared/metrics"
	"resume-forge/internal/shared/telemetry"
	"resume-forge/internal/shared/util"
	"resume-forge/internal/usage"
	"resume-forge/resume/content"
	"resume-forge/resume/ir"
	"resume-forge/resume/render"
)

// Extractor is the extraction-adapter contract the orchestrator depends on.
type Extractor interface {
	Extract(ctx context.Context, in extraction.Input) (content.Resume, error)
}

// Compiler is the compilation-adapter contract.
type Compiler interface {
	Compile(ctx context.Context, markup, target, fileStem string) ([]byte, error)
}

// Request is one ephemeral generation request; it lives for a single call.
type Request struct {
	Email      string `json:"email"`
	TemplateID string `json:"templateId"`
	Text       string `json:"text,omitempty"`
	PDFBase64  string `json:"pdfBase64,omitempty"`
}

// Result is a successful generation: the artifact plus the structured
// content it was produced from, so callers can display or edit without
// re-extracting.
type Result struct {
	Content  content.Resume `json:"content"`
	Document ir.Document    `json:"document"`
	PDF      []byte         `json:"-"`
	FileName string         `json:"fileName"`
	Usage    usage.Status   `json:"usage"`
}

// Service orchestrates the generation pipeline:
// validate → quota → extract → render → compile → record.
type Service struct {
	Extractor Extractor
	Compiler  Compiler
	Usage     *usage.Service
}

// NewService constructs a Service.
func NewService(extractor Extractor, compiler Compiler, usageSvc *usage.Service) *Service {
	return &Service{Extractor: extractor, Compiler: compiler, Usage: usageSvc}
}

// Generate runs the full pipeline for one request. Errors are typed per
// stage: *ValidationError, *QuotaError, *UpstreamError; anything else is
// internal.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	startedAt := time.Now().UTC()
	metrics.IncGenerationStarted()

	result, err := s.generate(ctx, req, startedAt)
	if err != nil {
		metrics.IncGenerationFailed()
		return Result{}, err
	}
	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	return result, nil
}

func (s *Service) generate(ctx context.Context, req Request, startedAt time.Time) (Result, error) {
	// Cheap checks first: nothing below this block touches an external
	// service until the request is structurally valid.
	email, pdfPayload, err := s.validate(&req)
	if err != nil {
		return Result{}, err
	}

	allowed, err := s.Usage.IsAllowed(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("allow-list lookup: %w", err)
	}
	if !allowed {
		return Result{}, &QuotaError{Msg: "this email is not yet approved for generation"}
	}

	status, err := s.Usage.CheckLimit(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("quota check: %w", err)
	}
	if !status.CanGenerate {
		return Result{}, &QuotaError{
			Msg:    fmt.Sprintf("generation limit reached (%d of %d used)", status.Used, status.Limit),
			Status: status,
		}
	}

	extracted, err := s.Extractor.Extract(ctx, extraction.Input{
		Text:     req.Text,
		PDF:      pdfPayload,
		Identity: email,
	})
	if err != nil {
		if extraction.IsPermanent(err) {
			return Result{}, &UpstreamError{Msg: "could not extract resume content from the input", Err: err}
		}
		return Result{}, &UpstreamError{Msg: "the extraction service is temporarily unavailable", Err: err}
	}

	doc := ir.FromResumeContent(extracted, req.TemplateID, startedAt)
	markup, err := render.Render(doc, req.TemplateID)
	if err != nil {
		// Inputs were validated above, so a render failure is a programming
		// error, not a user problem.
		return Result{}, fmt.Errorf("render template %s: %w", req.TemplateID, err)
	}

	fileStem := uuid.NewString()
	target := templateTarget(req.TemplateID)
	artifact, err := s.Compiler.Compile(ctx, markup, target, fileStem)
	if err != nil {
		var compileErr *compile.CompileError
		if errors.As(err, &compileErr) {
			telemetry.Error("generation.compile_failed", map[string]any{
				"email_hash": util.HashEmailKey(email),
				"template":   req.TemplateID,
				"status":     compileErr.Status,
				"log":        compileErr.Log,
			})
		}
		return Result{}, fmt.Errorf("compile document: %w", err)
	}
	if len(artifact) == 0 {
		return Result{}, fmt.Errorf("compile document: empty artifact")
	}

	if !status.Exempt {
		inputType, inputSize := inputStats(req.Text, pdfPayload)
		if recordErr := s.Usage.Record(ctx, email, inputType, inputSize, req.TemplateID); recordErr != nil {
			// The document already exists; losing one ledger row beats
			// discarding a successful result.
			telemetry.Error("generation.record_failed", map[string]any{
				"email_hash": util.HashEmailKey(email),
				"error":      recordErr.Error(),
			})
		} else {
			status.Used++
			status.CanGenerate = status.Used < status.Limit
		}
	}

	return Result{
		Content:  extracted,
		Document: doc,
		PDF:      artifact,
		FileName: artifactFileName(doc.Personal),
		Usage:    status,
	}, nil
}

func (s *Service) validate(req *Request) (string, []byte, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return "", nil, &ValidationError{Msg: "email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, &ValidationError{Msg: "email is not a valid address"}
	}
	req.Email = email

	req.TemplateID = strings.ToLower(strings.TrimSpace(req.TemplateID))
	if !render.Known(req.TemplateID) {
		return "", nil, &ValidationError{Msg: fmt.Sprintf("unknown template %q", req.TemplateID)}
	}
	if !render.Free(req.TemplateID) {
		return "", nil, &ValidationError{Msg: fmt.Sprintf("template %q is not available on the free tier", req.TemplateID)}
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" && strings.TrimSpace(req.PDFBase64) == "" {
		return "", nil, &ValidationError{Msg: "either text or pdfBase64 is required"}
	}

	var pdfPayload []byte
	if req.Text == "" {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.PDFBase64))
		if err != nil {
			return "", nil, &ValidationError{Msg: "pdfBase64 is not valid base64"}
		}
		if int64(len(decoded)) > extraction.MaxPDFBytes {
			return "", nil, &ValidationError{Msg: "pdf payload exceeds the 5 MiB limit"}
		}
		if len(decoded) == 0 {
			return "", nil, &ValidationError{Msg: "pdf payload is empty"}
		}
		pdfPayload = decoded
	}

	return email, pdfPayload, nil
}

func inputStats(text string, pdf []byte) (string, int) {
	if text != "" {
		return usage.InputTypeText, len(text)
	}
	return usage.InputTypePDF, len(pdf)
}

func templateTarget(templateID string) string {
	for _, t := range render.Templates() {
		if t.ID == templateID {
			return string(t.Target)
		}
	}
	return string(render.TargetLaTeX)
}

// artifactFileName derives a download name from the personal name fields,
// restricted to a safe character set.
func artifactFileName(p ir.Personal) string {
	stem := util.SanitizeFileStem(p.FullName())
	if stem == "" {
		stem = "resume"
	}
	return stem + "_Resume.pdf"
}
