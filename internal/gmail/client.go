package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

const historyPageSize = 500

// Client implements Gateway against the Gmail REST API. The client itself is
// stateless; credentials are supplied per call and a service is built per
// invocation so concurrent calls for different mailboxes never share tokens.
type Client struct {
	topicName string
}

// NewClient creates a gateway that registers watches against the given
// Pub/Sub topic (projects/<project>/topics/<topic>).
func NewClient(topicName string) *Client {
	return &Client{topicName: topicName}
}

func (c *Client) service(ctx context.Context, cred Credential) (*gmailapi.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.AccessToken, Expiry: cred.Expiry})
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return svc, nil
}

// RegisterWatch implements Gateway
func (c *Client) RegisterWatch(ctx context.Context, cred Credential, emailAddress string) (WatchResult, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return WatchResult{}, err
	}
	resp, err := svc.Users.Watch(emailAddress, &gmailapi.WatchRequest{
		TopicName:         c.topicName,
		LabelIds:          []string{"INBOX"},
		LabelFilterAction: "include",
	}).Context(ctx).Do()
	if err != nil {
		return WatchResult{}, classify(err, "register watch")
	}
	return WatchResult{
		HistoryID: resp.HistoryId,
		Expiry:    time.UnixMilli(resp.Expiration).UTC(),
	}, nil
}

// DeregisterWatch implements Gateway
func (c *Client) DeregisterWatch(ctx context.Context, cred Credential, emailAddress string) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return err
	}
	if err := svc.Users.Stop(emailAddress).Context(ctx).Do(); err != nil {
		return classify(err, "deregister watch")
	}
	return nil
}

// FetchDelta implements Gateway. Messages the provider has already deleted
// are returned with FetchError set so the rest of the delta still advances.
func (c *Client) FetchDelta(ctx context.Context, cred Credential, emailAddress string, sinceHistoryID uint64) (DeltaResult, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return DeltaResult{}, err
	}

	var (
		result    DeltaResult
		seen      = map[string]bool{}
		pageToken string
	)
	result.NewHistoryID = sinceHistoryID

	for {
		call := svc.Users.History.List(emailAddress).
			StartHistoryId(sinceHistoryID).
			HistoryTypes("messageAdded").
			MaxResults(historyPageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			if isNotFound(err) {
				return DeltaResult{}, fmt.Errorf("%w: start history id %d", ErrCursorExpired, sinceHistoryID)
			}
			return DeltaResult{}, classify(err, "list history")
		}
		if resp.HistoryId > result.NewHistoryID {
			result.NewHistoryID = resp.HistoryId
		}
		for _, h := range resp.History {
			for _, added := range h.MessagesAdded {
				if added.Message == nil || seen[added.Message.Id] {
					continue
				}
				seen[added.Message.Id] = true

				msg, err := c.GetMessage(ctx, cred, emailAddress, added.Message.Id)
				if err != nil {
					if !errors.Is(err, ErrMessageNotFound) {
						return DeltaResult{}, err
					}
					reason := err.Error()
					msg = domain.EmailMessage{ProviderMessageID: added.Message.Id, FetchError: &reason}
				}
				result.Messages = append(result.Messages, msg)
			}
		}
		if resp.NextPageToken == "" {
			return result, nil
		}
		pageToken = resp.NextPageToken
	}
}

// GetMessage implements Gateway
func (c *Client) GetMessage(ctx context.Context, cred Credential, emailAddress, messageID string) (domain.EmailMessage, error) {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return domain.EmailMessage{}, err
	}
	msg, err := svc.Users.Messages.Get(emailAddress, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return domain.EmailMessage{}, fmt.Errorf("%w: %s", ErrMessageNotFound, messageID)
		}
		return domain.EmailMessage{}, classify(err, "get message")
	}
	return parseMessage(msg), nil
}

// Label implements Gateway, creating the label on first use
func (c *Client) Label(ctx context.Context, cred Credential, emailAddress, messageID, labelName string) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return err
	}
	labelID, err := c.ensureLabel(ctx, svc, emailAddress, labelName)
	if err != nil {
		return err
	}
	_, err = svc.Users.Messages.Modify(emailAddress, messageID, &gmailapi.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}).Context(ctx).Do()
	if err != nil {
		return classify(err, "apply label")
	}
	return nil
}

func (c *Client) ensureLabel(ctx context.Context, svc *gmailapi.Service, emailAddress, labelName string) (string, error) {
	list, err := svc.Users.Labels.List(emailAddress).Context(ctx).Do()
	if err != nil {
		return "", classify(err, "list labels")
	}
	for _, l := range list.Labels {
		if l.Name == labelName {
			return l.Id, nil
		}
	}
	created, err := svc.Users.Labels.Create(emailAddress, &gmailapi.Label{
		Name:                  labelName,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		// another worker may have created it concurrently
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusConflict {
			return c.ensureLabel(ctx, svc, emailAddress, labelName)
		}
		return "", classify(err, "create label")
	}
	return created.Id, nil
}

// classify maps provider errors onto domain sentinels. 401 means the
// credential is no longer honored and the caller must not retry with it.
func classify(err error, op string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", op, domain.ErrCredentialRevoked)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
