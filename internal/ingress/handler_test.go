package ingress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/client"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/mocks"
	"github.com/ledgersift/mail-ingestor/internal/store/schema"
	"github.com/ledgersift/mail-ingestor/internal/workflows"
)

// fakeWorkflowRun satisfies client.WorkflowRun for handler responses
type fakeWorkflowRun struct {
	id    string
	runID string
}

func (r fakeWorkflowRun) GetID() string    { return r.id }
func (r fakeWorkflowRun) GetRunID() string { return r.runID }
func (r fakeWorkflowRun) Get(context.Context, interface{}) error {
	return nil
}
func (r fakeWorkflowRun) GetWithOptions(context.Context, interface{}, client.WorkflowRunGetOptions) error {
	return nil
}

// fakeEncodedValue carries a JSON-encoded query result
type fakeEncodedValue struct {
	data []byte
}

func (v fakeEncodedValue) HasValue() bool { return len(v.data) > 0 }
func (v fakeEncodedValue) Get(valuePtr interface{}) error {
	return json.Unmarshal(v.data, valuePtr)
}

// HandlerTestSuite is the test suite for the ingress handler
type HandlerTestSuite struct {
	suite.Suite

	ctrl         *gomock.Controller
	orchestrator *mocks.MockOrchestrator
	store        *mocks.MockStore
	router       *gin.Engine

	tenantID string
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.orchestrator = mocks.NewMockOrchestrator(s.ctrl)
	s.store = mocks.NewMockStore(s.ctrl)
	s.tenantID = uuid.NewString()

	handler := NewHandler(s.orchestrator, s.store, "mailbox-ingestion")
	s.router = gin.New()
	s.router.POST("/v1/tenants/:tenant_id/notifications", handler.ReceivePush)
	s.router.POST("/v1/tenants/:tenant_id/mailboxes", handler.LinkMailbox)
	s.router.DELETE("/v1/tenants/:tenant_id/mailboxes/:email_address", handler.UnlinkMailbox)
	s.router.GET("/v1/tenants/:tenant_id/mailboxes/:email_address/status", handler.MailboxStatus)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) pushPayload(emailAddress string, historyID uint64) []byte {
	change := fmt.Sprintf(`{"emailAddress":%q,"historyId":%d}`, emailAddress, historyID)
	data := base64.StdEncoding.EncodeToString([]byte(change))
	return []byte(fmt.Sprintf(`{"message":{"data":%q,"messageId":"pub-1"}}`, data))
}

func (s *HandlerTestSuite) account(active bool) *schema.SubscriptionAccount {
	return &schema.SubscriptionAccount{
		ID:            1,
		TenantID:      s.tenantID,
		EmailAddress:  "user@example.com",
		CredentialRef: "cred-main",
		IsActive:      active,
	}
}

func (s *HandlerTestSuite) TestReceivePush_DeliversSignal() {
	s.store.EXPECT().
		GetAccount(gomock.Any(), s.tenantID, "user@example.com").
		Return(s.account(true), nil)

	workflowID := workflows.MailboxWorkflowID(s.tenantID, "user@example.com")
	s.orchestrator.EXPECT().
		SignalWithStartWorkflow(gomock.Any(), workflowID, workflows.NotificationSignalName,
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, arg interface{}, _ client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			notif, ok := arg.(domain.ChangeNotification)
			s.Require().True(ok)
			s.Equal(s.tenantID, notif.TenantID)
			s.Equal(uint64(777), notif.HistoryID)
			return fakeWorkflowRun{id: workflowID, runID: "run-1"}, nil
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/notifications",
		bytes.NewReader(s.pushPayload("user@example.com", 777)))
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "accepted")
}

func (s *HandlerTestSuite) TestReceivePush_RejectsMalformedPayload() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/notifications",
		bytes.NewReader([]byte(`{"message":{"data":""}}`)))
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestReceivePush_AcksUnknownAccount() {
	s.store.EXPECT().
		GetAccount(gomock.Any(), s.tenantID, "user@example.com").
		Return(nil, domain.ErrAccountNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/notifications",
		bytes.NewReader(s.pushPayload("user@example.com", 10)))
	s.router.ServeHTTP(w, req)

	// Acked so the provider stops redelivering
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "ignored")
}

// A store answering nil account with nil error still gets an ack, never a
// panic turned into a 500 the provider would retry forever
func (s *HandlerTestSuite) TestReceivePush_AcksNilAccountRow() {
	s.store.EXPECT().
		GetAccount(gomock.Any(), s.tenantID, "user@example.com").
		Return(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/notifications",
		bytes.NewReader(s.pushPayload("user@example.com", 10)))
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "ignored")
}

func (s *HandlerTestSuite) TestReceivePush_AcksInactiveAccount() {
	s.store.EXPECT().
		GetAccount(gomock.Any(), s.tenantID, "user@example.com").
		Return(s.account(false), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/notifications",
		bytes.NewReader(s.pushPayload("user@example.com", 10)))
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "ignored")
}

func (s *HandlerTestSuite) TestLinkMailbox_StartsLifecycle() {
	workflowID := workflows.MailboxWorkflowID(s.tenantID, "user@example.com")
	s.orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), "MailboxLifecycle", gomock.Any()).
		Return(fakeWorkflowRun{id: workflowID, runID: "run-9"}, nil)

	body := []byte(`{"email_address":"user@example.com","credential_ref":"cred-main"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/mailboxes", bytes.NewReader(body))
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusAccepted, w.Code)
	s.Contains(w.Body.String(), workflowID)
	s.Contains(w.Body.String(), "run-9")
}

func (s *HandlerTestSuite) TestLinkMailbox_RejectsInvalidBody() {
	body := []byte(`{"email_address":"not-an-email"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/v1/tenants/"+s.tenantID+"/mailboxes", bytes.NewReader(body))
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestUnlinkMailbox_SignalsStop() {
	workflowID := workflows.MailboxWorkflowID(s.tenantID, "user@example.com")
	s.orchestrator.EXPECT().
		SignalWorkflow(gomock.Any(), workflowID, "", workflows.StopSignalName, nil).
		Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/v1/tenants/"+s.tenantID+"/mailboxes/user@example.com", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusAccepted, w.Code)
}

func (s *HandlerTestSuite) TestUnlinkMailbox_NotFoundWhenNoRun() {
	s.orchestrator.EXPECT().
		SignalWorkflow(gomock.Any(), gomock.Any(), "", workflows.StopSignalName, nil).
		Return(fmt.Errorf("workflow not found"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/v1/tenants/"+s.tenantID+"/mailboxes/user@example.com", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestMailboxStatus_ReturnsReport() {
	report := workflows.StatusReport{
		Phase:        "active",
		Cursor:       500,
		PendingCount: 0,
		WatchExpiry:  time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC),
	}
	encoded, err := json.Marshal(report)
	require.NoError(s.T(), err)

	s.orchestrator.EXPECT().
		QueryWorkflow(gomock.Any(), gomock.Any(), "", workflows.StatusQueryName).
		Return(fakeEncodedValue{data: encoded}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/v1/tenants/"+s.tenantID+"/mailboxes/user@example.com/status", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var got workflows.StatusReport
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(s.T(), "active", got.Phase)
	assert.Equal(s.T(), uint64(500), got.Cursor)
}
