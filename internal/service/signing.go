package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/signer"
)

var allowedSignMethods = map[string]struct{}{
	"GET":    {},
	"POST":   {},
	"DELETE": {},
	"PUT":    {},
	"PATCH":  {},
}

// SigningService validates signing requests and delegates the actual
// signature construction to the signer package. Credentials never appear in
// logs or responses beyond the configured API key.
type SigningService struct {
	creds *signer.BuilderCredentials
}

// NewSigningService accepts nil credentials; signing then reports
// SERVICE_UNAVAILABLE instead of failing at startup.
func NewSigningService(creds *signer.BuilderCredentials) *SigningService {
	return &SigningService{creds: creds}
}

func (s *SigningService) Enabled() bool {
	return s.creds != nil
}

// Sign produces the attribution header set for one upstream trading call.
// Shape validation happens before any signature is computed.
func (s *SigningService) Sign(req model.SignRequest) (*model.SignResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if _, ok := allowedSignMethods[method]; !ok {
		return nil, apperrors.NewValidation("method must be one of GET, POST, DELETE, PUT, PATCH", nil)
	}
	if !strings.HasPrefix(req.Path, "/") {
		return nil, apperrors.NewValidation("path must start with /", nil)
	}
	if req.Body != "" && !json.Valid([]byte(req.Body)) {
		return nil, apperrors.NewValidation("body must be valid JSON text", nil)
	}
	if s.creds == nil {
		return nil, apperrors.NewUnavailable("builder signing is not configured")
	}

	timestamp := time.Now().UnixMilli()
	sig, err := signer.BuildSignature(s.creds.Secret, timestamp, method, req.Path, req.Body)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}

	return &model.SignResponse{
		ApiKey:     s.creds.ApiKey,
		Signature:  sig,
		Timestamp:  strconv.FormatInt(timestamp, 10),
		Passphrase: s.creds.Passphrase,
	}, nil
}

// BuilderInfo reports whether signing is enabled. Only the API key is
// exposed; it is the public half of the credential set.
func (s *SigningService) BuilderInfo() model.BuilderInfo {
	info := model.BuilderInfo{Enabled: s.creds != nil}
	if s.creds != nil {
		info.ApiKey = s.creds.ApiKey
	}
	return info
}
