// Package ingress receives the provider's push deliveries, decodes them and
// forwards each notification into the correct tenant's lifecycle workflow,
// starting one when none is running.
package ingress

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/ledgersift/mail-ingestor/internal/domain"
	"github.com/ledgersift/mail-ingestor/internal/logger"
	"github.com/ledgersift/mail-ingestor/internal/notification"
	temporalprovider "github.com/ledgersift/mail-ingestor/internal/providers/temporal"
	"github.com/ledgersift/mail-ingestor/internal/store"
	"github.com/ledgersift/mail-ingestor/internal/workflows"
)

// Handler serves the push and lifecycle management endpoints
type Handler struct {
	temporal  temporalprovider.Orchestrator
	store     store.Store
	taskQueue string
}

// NewHandler creates a new ingress handler
func NewHandler(orchestrator temporalprovider.Orchestrator, st store.Store, taskQueue string) *Handler {
	return &Handler{temporal: orchestrator, store: st, taskQueue: taskQueue}
}

// HealthCheck reports liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// linkRequest links a mailbox to a tenant
type linkRequest struct {
	EmailAddress  string `json:"email_address" binding:"required,email"`
	CredentialRef string `json:"credential_ref" binding:"required"`
}

// LinkMailbox starts the lifecycle workflow for a tenant mailbox
func (h *Handler) LinkMailbox(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := workflows.MailboxLifecycleParams{
		TenantID:      tenantID,
		EmailAddress:  req.EmailAddress,
		CredentialRef: req.CredentialRef,
	}
	workflowID := workflows.MailboxWorkflowID(tenantID, req.EmailAddress)
	run, err := h.temporal.ExecuteWorkflow(c.Request.Context(), client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             h.taskQueue,
		// A relink restarts a finished lifecycle
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, "MailboxLifecycle", params)
	if err != nil {
		logger.Error(err,
			zap.String("tenantID", tenantID),
			zap.String("emailAddress", req.EmailAddress),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to start lifecycle"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"workflow_id": workflowID,
		"run_id":      run.GetRunID(),
	})
}

// UnlinkMailbox signals the lifecycle to stop and deactivate the account
func (h *Handler) UnlinkMailbox(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	emailAddress := c.Param("email_address")

	workflowID := workflows.MailboxWorkflowID(tenantID, emailAddress)
	err := h.temporal.SignalWorkflow(c.Request.Context(), workflowID, "", workflows.StopSignalName, nil)
	if err != nil {
		logger.Error(err,
			zap.String("tenantID", tenantID),
			zap.String("emailAddress", emailAddress),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": "no running lifecycle for mailbox"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"workflow_id": workflowID})
}

// MailboxStatus queries the running lifecycle for its status report
func (h *Handler) MailboxStatus(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	emailAddress := c.Param("email_address")

	workflowID := workflows.MailboxWorkflowID(tenantID, emailAddress)
	resp, err := h.temporal.QueryWorkflow(c.Request.Context(), workflowID, "", workflows.StatusQueryName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no running lifecycle for mailbox"})
		return
	}
	var report workflows.StatusReport
	if err := resp.Get(&report); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to decode status"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ReceivePush handles one push delivery. A malformed payload is rejected
// deterministically; transient signal failures are retried before the
// delivery is reported failed so the provider redelivers it.
func (h *Handler) ReceivePush(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	notif, err := notification.Decode(tenantID, payload, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidNotification) {
			logger.Warn("Rejected malformed push payload",
				zap.String("tenantID", tenantID),
				zap.String("requestID", c.GetString(requestIDKey)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decode failed"})
		return
	}

	account, err := h.store.GetAccount(c.Request.Context(), tenantID, notif.EmailAddress)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Ack so the provider stops redelivering pushes for an
			// unlinked mailbox
			logger.Warn("Push for unknown account",
				zap.String("tenantID", tenantID),
				zap.String("emailAddress", notif.EmailAddress),
			)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account lookup failed"})
		return
	}
	if account == nil || !account.IsActive {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.signalWithStart(c, account.CredentialRef, notif); err != nil {
		logger.Error(err,
			zap.String("tenantID", tenantID),
			zap.String("emailAddress", notif.EmailAddress),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to deliver notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// signalWithStart delivers the notification to the lifecycle workflow,
// starting one if none is running, with bounded retries on transient errors
func (h *Handler) signalWithStart(c *gin.Context, credentialRef string, notif domain.ChangeNotification) error {
	workflowID := workflows.MailboxWorkflowID(notif.TenantID, notif.EmailAddress)
	params := workflows.MailboxLifecycleParams{
		TenantID:      notif.TenantID,
		EmailAddress:  notif.EmailAddress,
		CredentialRef: credentialRef,
	}

	operation := func() error {
		_, err := h.temporal.SignalWithStartWorkflow(c.Request.Context(), workflowID,
			workflows.NotificationSignalName, notif,
			client.StartWorkflowOptions{
				ID:        workflowID,
				TaskQueue: h.taskQueue,
			}, "MailboxLifecycle", params)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second
	return backoff.Retry(operation, backoff.WithContext(b, c.Request.Context()))
}
