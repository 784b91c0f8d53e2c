package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"testreport/internal/config"
	"testreport/internal/domain"
	"testreport/internal/port"
	"testreport/internal/service"
	"testreport/mocks"
)

// memFile adapts an in-memory byte slice to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(data []byte) multipart.File {
	return memFile{bytes.NewReader(data)}
}

const analyzedReportText = `TEST RAPORU

Test Koşulları
Sıcaklık 23 C ortamında test yapıldı.

Sonuçlar
1. Fren Testi - PASS
2. Sensör Testi - FAIL
Hata: zaman aşımı

Özet
Toplam 2 test koşuldu.
`

type serviceFixture struct {
	reportRepo  *mocks.MockReportRepo
	resultRepo  *mocks.MockTestResultRepo
	summaryRepo *mocks.MockSummaryRepo
	storage     *mocks.MockObjectStorage
	extractor   *mocks.MockTextExtractor
	email       *mocks.MockEmailSender
	analyzer    *mocks.MockFailureAnalyzer
	emailCfg    *config.EmailConfig
	svc         service.ReportService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		reportRepo:  new(mocks.MockReportRepo),
		resultRepo:  new(mocks.MockTestResultRepo),
		summaryRepo: new(mocks.MockSummaryRepo),
		storage:     new(mocks.MockObjectStorage),
		extractor:   new(mocks.MockTextExtractor),
		email:       new(mocks.MockEmailSender),
		analyzer:    new(mocks.MockFailureAnalyzer),
		emailCfg:    &config.EmailConfig{},
	}
	f.svc = service.NewReportService(
		f.reportRepo, f.resultRepo, f.summaryRepo,
		f.storage, f.extractor, f.email, f.analyzer,
		&config.S3Config{Bucket: "reports-bucket", PresignExpiry: 900},
		&config.UploadConfig{MaxFileSizeMB: 10},
		f.emailCfg,
	)
	return f
}

func uploadInput(filename string, data []byte, size int64) service.ReportUploadInput {
	return service.ReportUploadInput{
		File:   newMemFile(data),
		Header: &multipart.FileHeader{Filename: filename, Size: size},
	}
}

func TestReportService_Upload(t *testing.T) {
	f := newServiceFixture()
	f.emailCfg.ToAddress = "qa@example.com"

	fileBytes := []byte("%PDF-1.4 test raporu içeriği")

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.RawDocument{Text: analyzedReportText}, nil)
	f.analyzer.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.FailureAnalysis{FailureReason: "zaman aşımı kaynaklı", SuggestedFix: "limiti artırın", Provider: "claude"}, nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "reports-bucket" && strings.HasPrefix(in.Key, "reports/") && strings.HasSuffix(in.Key, "/rapor.pdf")
	})).Return(&port.UploadOutput{Location: "https://s3/rapor.pdf"}, nil)
	f.reportRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.resultRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.summaryRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendAnalysisComplete", mock.Anything, "qa@example.com", mock.Anything).Return(nil)

	detail, err := f.svc.Upload(context.Background(), uploadInput("rapor.pdf", fileBytes, int64(len(fileBytes))))
	require.NoError(t, err)

	assert.Equal(t, "rapor.pdf", detail.Report.Filename)
	assert.Equal(t, domain.LangTR, detail.Report.Language)
	assert.Equal(t, domain.FormatGeneric, detail.Report.FormatKey)
	assert.Equal(t, 2, detail.Report.TotalTests)
	assert.Equal(t, 1, detail.Report.PassedTests)
	assert.Equal(t, 1, detail.Report.FailedTests)

	require.Len(t, detail.Results, 2)
	assert.Equal(t, "Fren Testi", detail.Results[0].TestName)
	assert.Equal(t, domain.StatusPass, detail.Results[0].Status)
	assert.Equal(t, 0, detail.Results[0].Position)
	assert.Equal(t, "Sensör Testi", detail.Results[1].TestName)
	assert.Equal(t, domain.StatusFail, detail.Results[1].Status)
	assert.Equal(t, "zaman aşımı kaynaklı", detail.Results[1].FailureReason)
	assert.Equal(t, "claude", detail.Results[1].AIProvider)
	assert.Equal(t, 1, detail.Results[1].Position)

	assert.Len(t, detail.Summaries, 3)
	f.summaryRepo.AssertNumberOfCalls(t, "Upsert", 3)
	f.email.AssertNumberOfCalls(t, "SendAnalysisComplete", 1)
}

func TestReportService_Upload_ParsesRecordsOutsideResultsSection(t *testing.T) {
	f := newServiceFixture()

	// The results section ends at the next heading, but test records can
	// appear anywhere in the document. The scanner runs over the full
	// extracted text, so the late failure must still be persisted.
	reportText := `TEST RAPORU

Sonuçlar
1. Fren Testi - PASS

Özet
Genel değerlendirme tamamlandı.
2. Sensör Testi - FAIL
Hata: zaman aşımı
`

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.RawDocument{Text: reportText}, nil)
	f.analyzer.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.FailureAnalysis{FailureReason: "zaman aşımı kaynaklı", SuggestedFix: "limiti artırın", Provider: "claude"}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.reportRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.resultRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.summaryRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	data := []byte("%PDF-1.4 içerik")
	detail, err := f.svc.Upload(context.Background(), uploadInput("rapor.pdf", data, int64(len(data))))
	require.NoError(t, err)

	require.Len(t, detail.Results, 2)
	assert.Equal(t, "Fren Testi", detail.Results[0].TestName)
	assert.Equal(t, "Sensör Testi", detail.Results[1].TestName)
	assert.Equal(t, domain.StatusFail, detail.Results[1].Status)
	assert.Equal(t, 2, detail.Report.TotalTests)
	assert.Equal(t, 1, detail.Report.FailedTests)
}

func TestReportService_Upload_UnsupportedExtension(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Upload(context.Background(), uploadInput("rapor.docx", nil, 10))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestReportService_Upload_FileTooLarge(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Upload(context.Background(), uploadInput("rapor.pdf", nil, 11*1024*1024))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestReportService_Upload_ContentMismatch(t *testing.T) {
	f := newServiceFixture()

	data := []byte("sadece düz metin, pdf değil")
	_, err := f.svc.Upload(context.Background(), uploadInput("rapor.pdf", data, int64(len(data))))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestReportService_Upload_ExtractionFails(t *testing.T) {
	f := newServiceFixture()
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(nil, domain.ErrExtractionFailed)

	data := []byte("%PDF-1.4 bozuk")
	_, err := f.svc.Upload(context.Background(), uploadInput("rapor.pdf", data, int64(len(data))))
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestReportService_Upload_StorageFails(t *testing.T) {
	f := newServiceFixture()
	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.RawDocument{Text: analyzedReportText}, nil)
	f.analyzer.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.FailureAnalysis{FailureReason: "r", SuggestedFix: "f", Provider: "claude"}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	data := []byte("%PDF-1.4 içerik")
	_, err := f.svc.Upload(context.Background(), uploadInput("rapor.pdf", data, int64(len(data))))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	f.reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_GetByID(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	report := &domain.Report{ID: id, Filename: "rapor.pdf"}

	f.reportRepo.On("GetByID", mock.Anything, id).Return(report, nil)
	f.resultRepo.On("ListByReport", mock.Anything, id).Return([]domain.TestResult{{TestName: "Fren Testi"}}, nil)
	f.summaryRepo.On("ListByReport", mock.Anything, id).Return([]domain.ReportSummary{}, nil)

	detail, err := f.svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, report, detail.Report)
	require.Len(t, detail.Results, 1)
}

func TestReportService_GetByID_NotFound(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	f.reportRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_ListFailures_ChecksReportExists(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	f.reportRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.ListFailures(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.resultRepo.AssertNotCalled(t, "ListFailedByReport", mock.Anything, mock.Anything)
}

func TestReportService_Export(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	report := &domain.Report{ID: id, Filename: "rapor.pdf", TotalTests: 1, PassedTests: 1}

	f.reportRepo.On("GetByID", mock.Anything, id).Return(report, nil)
	f.resultRepo.On("ListByReport", mock.Anything, id).
		Return([]domain.TestResult{{TestName: "Fren Testi", Status: domain.StatusPass}}, nil)
	f.summaryRepo.On("ListByReport", mock.Anything, id).Return([]domain.ReportSummary{}, nil)

	file, err := f.svc.Export(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "rapor_analiz.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.NotEmpty(t, file.Data)
}

func TestReportService_GetFileURL(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	report := &domain.Report{ID: id, Filename: "rapor.pdf", StorageKey: "reports/abc/rapor.pdf"}

	f.reportRepo.On("GetByID", mock.Anything, id).Return(report, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "reports-bucket", "reports/abc/rapor.pdf", int64(900)).
		Return("https://s3/presigned/rapor.pdf", nil)

	url, err := f.svc.GetFileURL(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://s3/presigned/rapor.pdf", url)
}

func TestReportService_GetFileURL_NotFound(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	f.reportRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.GetFileURL(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Delete(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	f.reportRepo.On("Delete", mock.Anything, id).Return("reports/abc/rapor.pdf", nil)
	f.storage.On("Delete", mock.Anything, "reports-bucket", "reports/abc/rapor.pdf").Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), id))
	f.storage.AssertNumberOfCalls(t, "Delete", 1)
}

func TestReportService_Delete_NotFound(t *testing.T) {
	f := newServiceFixture()
	id := uuid.New()
	f.reportRepo.On("Delete", mock.Anything, id).Return("", domain.ErrNotFound)

	err := f.svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
