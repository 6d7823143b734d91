package sessions

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/models"
)

// Service verifies the HMAC-signed session tokens minted by the identity
// provider. The token format is base64(payload).base64(signature) over a
// shared secret; the payload is the serialized UserSession.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue mints a signed token for a session. Used by the identity callback
// and by tests.
func (s *Service) Issue(session *models.UserSession) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	encoded := base64.URLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

// Verify checks the token signature and expiry and returns the session.
func (s *Service) Verify(token string) (*models.UserSession, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed session token")
	}

	if !hmac.Equal([]byte(s.sign(parts[0])), []byte(parts[1])) {
		return nil, fmt.Errorf("invalid session signature")
	}

	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode session payload: %w", err)
	}

	var session models.UserSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("session expired")
	}
	return &session, nil
}

func (s *Service) sign(data string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}
