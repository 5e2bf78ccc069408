// Package slack implements the Slack intake channel: slash command opens a
// blocker modal, modal submission records the blocker and confirms via DM.
package slack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/momentum-hq/momentum-api/internal/config"
	"github.com/momentum-hq/momentum-api/internal/domain"
)

// Requests older than this are rejected regardless of signature.
const signatureMaxAge = 5 * time.Minute

// Core is the application surface the Slack channel needs.
type Core interface {
	FindMemberBySlackID(ctx context.Context, slackID string) (*domain.TeamMember, error)
	FindMemberByEmail(ctx context.Context, email string) (*domain.TeamMember, error)
	UpdateMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	CreateMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	CreateBlocker(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error)
}

type Service struct {
	log           *slog.Logger
	core          Core
	signingSecret string
	botToken      string
	apiURL        string
	frontendURL   string
	httpClient    *http.Client
	now           func() time.Time
}

func New(log *slog.Logger, core Core, cfg config.Slack, frontendURL string) *Service {
	return &Service{
		log:           log,
		core:          core,
		signingSecret: cfg.SigningSecret,
		botToken:      cfg.BotToken,
		apiURL:        cfg.APIURL,
		frontendURL:   frontendURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		now:           time.Now,
	}
}

// VerifySignature checks the v0 HMAC signature over "v0:<timestamp>:<body>".
// An unconfigured signing secret skips verification (local development).
func (s *Service) VerifySignature(signature, timestamp string, body []byte) bool {
	if s.signingSecret == "" {
		s.log.Warn("slack.VerifySignature: signing secret not configured, skipping verification")
		return true
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := math.Abs(float64(s.now().Unix() - ts))
	if age > signatureMaxAge.Seconds() {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.signingSecret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// CommandPayload is the slash-command form body.
type CommandPayload struct {
	Command   string `form:"command"`
	Text      string `form:"text"`
	UserID    string `form:"user_id"`
	UserName  string `form:"user_name"`
	ChannelID string `form:"channel_id"`
	TriggerID string `form:"trigger_id"`
}

// InteractionPayload is the interactivity callback body.
type InteractionPayload struct {
	Type string `json:"type"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	TriggerID string `json:"trigger_id"`
	View      struct {
		CallbackID string `json:"callback_id"`
		State      struct {
			Values map[string]map[string]struct {
				Value          string `json:"value"`
				SelectedOption struct {
					Value string `json:"value"`
				} `json:"selected_option"`
			} `json:"values"`
		} `json:"state"`
	} `json:"view"`
}

// HandleCommand opens the blocker modal for the invoking user.
func (s *Service) HandleCommand(ctx context.Context, payload CommandPayload) error {
	return s.openModal(ctx, payload.TriggerID)
}

// HandleInteraction processes a modal submission: resolves the member,
// confirms via DM and records the blocker tagged with the DM's message id.
func (s *Service) HandleInteraction(ctx context.Context, payload InteractionPayload) error {
	if payload.View.CallbackID != "blocker_submission" {
		return nil
	}

	values := payload.View.State.Values
	description := values["description_block"]["description_input"].Value
	category := values["category_block"]["category_select"].SelectedOption.Value
	severity := values["severity_block"]["severity_select"].SelectedOption.Value
	if description == "" || category == "" || severity == "" {
		return errors.New("modal submission missing required fields")
	}

	member, err := s.findOrCreateMember(ctx, payload.User.ID)
	if err != nil {
		return err
	}

	slackMessageID := ""
	channel, ts, err := s.sendConfirmation(ctx, payload.User.ID, description, category, severity)
	if err != nil {
		s.log.Error("slack.HandleInteraction: failed to send confirmation DM",
			slog.String("slack_user", payload.User.ID),
			slog.Any("error", err),
		)
	} else {
		slackMessageID = channel + ":" + ts
	}

	_, err = s.core.CreateBlocker(ctx, &domain.Blocker{
		TeamMemberUID:  member.UID,
		Description:    description,
		Category:       domain.BlockerCategory(category),
		Severity:       domain.BlockerSeverity(severity),
		ReportedVia:    "Slack",
		SlackMessageID: slackMessageID,
	})
	if err != nil {
		return fmt.Errorf("create blocker: %w", err)
	}

	s.log.Info("slack.HandleInteraction: blocker created",
		slog.String("slack_user", payload.User.Username),
		slog.String("slack_message_id", slackMessageID),
	)
	return nil
}

// findOrCreateMember resolves a Slack user to a member, linking the Slack id
// to an existing member by email, or provisioning a new one.
func (s *Service) findOrCreateMember(ctx context.Context, slackUserID string) (*domain.TeamMember, error) {
	member, err := s.core.FindMemberBySlackID(ctx, slackUserID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	user, err := s.userInfo(ctx, slackUserID)
	if err != nil {
		return nil, err
	}
	if user.Profile.Email == "" {
		return nil, errors.New("slack user has no email, cannot resolve member")
	}

	member, err = s.core.FindMemberByEmail(ctx, user.Profile.Email)
	if err == nil {
		member.SlackID = slackUserID
		return s.core.UpdateMember(ctx, member)
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	firstName := user.Profile.FirstName
	lastName := user.Profile.LastName
	if firstName == "" {
		parts := strings.SplitN(user.RealName, " ", 2)
		firstName = parts[0]
		if len(parts) > 1 {
			lastName = parts[1]
		}
	}

	return s.core.CreateMember(ctx, &domain.TeamMember{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      user.Profile.Email,
		SlackID:    slackUserID,
		ProfilePic: user.Profile.Image72,
		Status:     domain.MemberActive,
	})
}

type slackUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name"`
	Profile  struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Image72   string `json:"image_72"`
	} `json:"profile"`
}

func (s *Service) userInfo(ctx context.Context, userID string) (*slackUser, error) {
	var result struct {
		apiResult
		User slackUser `json:"user"`
	}
	endpoint := "users.info?user=" + url.QueryEscape(userID)
	if err := s.callAPI(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (s *Service) openModal(ctx context.Context, triggerID string) error {
	payload := map[string]any{
		"trigger_id": triggerID,
		"view":       blockerModalView(),
	}
	var result apiResult
	return s.callAPI(ctx, http.MethodPost, "views.open", payload, &result)
}

// sendConfirmation DMs the user a submission receipt and returns the channel
// and message timestamp for linking.
func (s *Service) sendConfirmation(ctx context.Context, userID, description, category, severity string) (channel, ts string, err error) {
	var open struct {
		apiResult
		Channel struct {
			ID string `json:"id"`
		} `json:"channel"`
	}
	if err := s.callAPI(ctx, http.MethodPost, "conversations.open", map[string]any{"users": userID}, &open); err != nil {
		return "", "", err
	}

	shortDesc := description
	if utf8.RuneCountInString(shortDesc) > 50 {
		shortDesc = string([]rune(shortDesc)[:50]) + "..."
	}

	var message struct {
		apiResult
		TS string `json:"ts"`
	}
	payload := map[string]any{
		"channel": open.Channel.ID,
		"text":    "Blocker logged: " + shortDesc,
		"blocks":  confirmationBlocks(description, category, severity, s.frontendURL),
	}
	if err := s.callAPI(ctx, http.MethodPost, "chat.postMessage", payload, &message); err != nil {
		return "", "", err
	}
	return open.Channel.ID, message.TS, nil
}

type apiResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (r apiResult) ok() bool { return r.OK }

func (r apiResult) errMsg() string { return r.Error }

type apiChecker interface {
	ok() bool
	errMsg() string
}

func (s *Service) callAPI(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("slack: encode %s payload: %w", endpoint, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiURL+"/"+endpoint, body)
	if err != nil {
		return fmt.Errorf("slack: build %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.botToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack: %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("slack: decode %s response: %w", endpoint, err)
	}
	if checker, isChecker := out.(apiChecker); isChecker && !checker.ok() {
		return fmt.Errorf("slack: %s returned error: %s", endpoint, checker.errMsg())
	}
	return nil
}
