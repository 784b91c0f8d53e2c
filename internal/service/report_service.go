package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"testreport/internal/config"
	"testreport/internal/domain"
	"testreport/internal/engine"
	"testreport/internal/export"
	"testreport/internal/port"
	"testreport/internal/summary"
	"testreport/internal/translate"
)

var allowedUploadTypes = map[string]string{
	"pdf": "application/pdf",
}

// ReportUploadInput is the DTO for report upload requests.
type ReportUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ReportDetail bundles a report with its results and localized summaries.
type ReportDetail struct {
	Report    *domain.Report         `json:"report"`
	Results   []domain.TestResult    `json:"results"`
	Summaries []domain.ReportSummary `json:"summaries"`
}

// ExportFile is a rendered workbook ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService defines the report analysis contract.
type ReportService interface {
	Upload(ctx context.Context, input ReportUploadInput) (*ReportDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReportDetail, error)
	List(ctx context.Context, sortBy, order string) ([]domain.Report, error)
	ListFailures(ctx context.Context, id uuid.UUID) ([]domain.TestResult, error)
	Export(ctx context.Context, id uuid.UUID) (*ExportFile, error)
	GetFileURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportService struct {
	reportRepo  port.ReportRepository
	resultRepo  port.TestResultRepository
	summaryRepo port.SummaryRepository
	storage     port.ObjectStorage
	extractor   port.TextExtractor
	email       port.EmailSender
	parser      *engine.ResultParser
	s3cfg       *config.S3Config
	uploadCfg   *config.UploadConfig
	emailCfg    *config.EmailConfig
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	resultRepo port.TestResultRepository,
	summaryRepo port.SummaryRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	email port.EmailSender,
	analyzer port.FailureAnalyzer,
	s3cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
	emailCfg *config.EmailConfig,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		resultRepo:  resultRepo,
		summaryRepo: summaryRepo,
		storage:     storage,
		extractor:   extractor,
		email:       email,
		parser:      engine.NewResultParser(analyzer),
		s3cfg:       s3cfg,
		uploadCfg:   uploadCfg,
		emailCfg:    emailCfg,
	}
}

func (s *reportService) Upload(ctx context.Context, input ReportUploadInput) (*ReportDetail, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	contentType, ok := allowedUploadTypes[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	fileBytes, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(fileBytes)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if detected := http.DetectContentType(fileBytes); detected != contentType {
		return nil, domain.ErrUnsupportedFileType
	}

	log.Printf("reportService.Upload: analyzing %s (%d bytes)", input.Header.Filename, len(fileBytes))

	doc, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		Filename:    input.Header.Filename,
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("reportService.Upload: extraction failed for %s: %v", input.Header.Filename, err)
		return nil, err
	}

	text := doc.BestText()
	lang := engine.IdentifySectionLanguage(text)
	format := engine.DetectFormat(text)
	verdict := engine.InferReportType(text, input.Header.Filename)

	var sections domain.SectionMap
	if format == domain.FormatKielt {
		sections = engine.ParseKieltFormat(text)
	} else {
		sections = engine.DetectSections(text)
	}

	// The state machine scans the whole document rather than the detected
	// results section. Records can sit outside the recognized heading
	// bounds, and the scanner skips summary and narrative lines itself.
	records := s.parser.Parse(ctx, text)

	resultsText := sections[domain.SectionResults]
	if strings.TrimSpace(resultsText) == "" {
		resultsText = text
	}

	total, passed, failed := countRecords(records)

	reportID := uuid.New()
	storageKey := fmt.Sprintf("reports/%s/%s", reportID, input.Header.Filename)

	report := &domain.Report{
		ID:          reportID,
		Filename:    input.Header.Filename,
		StorageKey:  storageKey,
		ReportType:  verdict.Key,
		FormatKey:   format,
		Language:    lang,
		TotalTests:  total,
		PassedTests: passed,
		FailedTests: failed,
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         storageKey,
		Body:        bytes.NewReader(fileBytes),
		ContentType: contentType,
		Size:        int64(len(fileBytes)),
	})
	if err != nil {
		log.Printf("reportService.Upload: storage upload failed for %s: %v", input.Header.Filename, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	results := make([]domain.TestResult, len(records))
	for i, rec := range records {
		results[i] = domain.TestResult{
			ReportID:      report.ID,
			TestName:      rec.TestName,
			Status:        rec.Status,
			ErrorMessage:  rec.ErrorMessage,
			FailureReason: rec.FailureReason,
			SuggestedFix:  rec.SuggestedFix,
			AIProvider:    rec.AIProvider,
			Position:      i,
		}
	}
	if err := s.resultRepo.CreateBatch(ctx, results); err != nil {
		return nil, fmt.Errorf("storing test results: %w", err)
	}

	summaries := s.buildSummaries(ctx, report, doc, sections, resultsText, lang)

	s.notify(ctx, report)

	return &ReportDetail{Report: report, Results: results, Summaries: summaries}, nil
}

// buildSummaries assembles the comprehensive report in the detected
// language, localizes it to the remaining languages with the offline
// dictionary, and persists one row per language. Summary persistence is
// best effort; a failed upsert never fails the upload.
func (s *reportService) buildSummaries(
	ctx context.Context,
	report *domain.Report,
	doc *domain.RawDocument,
	sections domain.SectionMap,
	resultsText string,
	lang domain.Language,
) []domain.ReportSummary {
	condText := sections[domain.SectionTestConditions]
	params := engine.ExtractMeasurementParams(doc.BestText())

	graphsText := sections[domain.SectionGraphs]
	if strings.TrimSpace(graphsText) == "" {
		graphsText = sections[domain.SectionLoadValues]
	}

	analysis := map[domain.SectionKey]string{
		domain.SectionSummary:        summary.SummariseSentences(sections[domain.SectionSummary], 3, 600),
		domain.SectionTestConditions: summary.BasicConditionsInfo(condText),
		domain.SectionGraphs:         summary.FormatMeasurementParams(graphsText, params),
		domain.SectionResults:        summary.ResultsTable(resultsText, lang),
		domain.SectionDetailedData:   summary.DetailedDataList(sections[domain.SectionDetailedData], lang),
	}

	header := summary.SummariseSentences(sections[domain.SectionHeader], 2, 300)
	base := summary.BuildComprehensiveReport(analysis, lang, header)

	var stored []domain.ReportSummary
	for _, target := range domain.Languages {
		row := domain.ReportSummary{
			ReportID:     report.ID,
			Language:     target,
			Summary:      translate.Fallback(base.Summary, string(lang), string(target)),
			Conditions:   translate.Fallback(base.TestConditions, string(lang), string(target)),
			Improvements: translate.Fallback(base.Improvements, string(lang), string(target)),
		}
		if err := s.summaryRepo.Upsert(ctx, &row); err != nil {
			log.Printf("reportService.buildSummaries: upsert %s summary for %s failed: %v", target, report.ID, err)
			continue
		}
		stored = append(stored, row)
	}
	return stored
}

func (s *reportService) notify(ctx context.Context, report *domain.Report) {
	if s.emailCfg.ToAddress == "" {
		return
	}
	err := s.email.SendAnalysisComplete(ctx, s.emailCfg.ToAddress, port.AnalysisNotification{
		Filename:    report.Filename,
		ReportType:  report.ReportType.Label(),
		TotalTests:  report.TotalTests,
		PassedTests: report.PassedTests,
		FailedTests: report.FailedTests,
	})
	if err != nil {
		log.Printf("reportService.notify: email for %s failed: %v", report.ID, err)
	}
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*ReportDetail, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.ListByReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing test results: %w", err)
	}
	summaries, err := s.summaryRepo.ListByReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	return &ReportDetail{Report: report, Results: results, Summaries: summaries}, nil
}

func (s *reportService) List(ctx context.Context, sortBy, order string) ([]domain.Report, error) {
	return s.reportRepo.List(ctx, sortBy, order)
}

func (s *reportService) ListFailures(ctx context.Context, id uuid.UUID) ([]domain.TestResult, error) {
	if _, err := s.reportRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.resultRepo.ListFailedByReport(ctx, id)
}

func (s *reportService) Export(ctx context.Context, id uuid.UUID) (*ExportFile, error) {
	detail, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := export.WriteXLSX(detail.Report, detail.Results)
	if err != nil {
		return nil, fmt.Errorf("rendering export: %w", err)
	}
	base := strings.TrimSuffix(detail.Report.Filename, filepath.Ext(detail.Report.Filename))
	return &ExportFile{
		Filename:    base + "_analiz.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

// GetFileURL returns a time-limited download link for the stored PDF.
func (s *reportService) GetFileURL(ctx context.Context, id uuid.UUID) (string, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, report.StorageKey, s.s3cfg.PresignExpiry)
	if err != nil {
		log.Printf("reportService.GetFileURL: presign for %s failed: %v", report.ID, err)
		return "", fmt.Errorf("presigning download: %w", err)
	}
	return url, nil
}

func (s *reportService) Delete(ctx context.Context, id uuid.UUID) error {
	storageKey, err := s.reportRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if storageKey != "" {
		if err := s.storage.Delete(ctx, s.s3cfg.Bucket, storageKey); err != nil {
			log.Printf("reportService.Delete: removing stored file %s failed: %v", storageKey, err)
		}
	}
	return nil
}

func countRecords(records []domain.TestRecord) (total, passed, failed int) {
	total = len(records)
	for _, r := range records {
		if r.Status == domain.StatusPass {
			passed++
		} else {
			failed++
		}
	}
	return total, passed, failed
}
