package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// BuilderCredentials is the attribution key set that credits trading volume
// to the gateway operator.
type BuilderCredentials struct {
	ApiKey     string
	Secret     string
	Passphrase string
}

// BuildSignature computes the builder attribution signature: base64url
// HMAC-SHA256 over timestamp+method+path+body, keyed with the base64url
// decoded secret.
func BuildSignature(secret string, timestampMs int64, method, path, body string) (string, error) {
	key, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("invalid builder secret: %w", err)
	}

	message := strconv.FormatInt(timestampMs, 10) + method + path + body
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Headers produces the full attribution header set for one upstream call.
// A nil or string body is passed through; anything else is serialized to
// JSON first.
func (c *BuilderCredentials) Headers(now time.Time, method, path string, body any) (map[string]string, error) {
	bodyText := ""
	switch v := body.(type) {
	case nil:
	case string:
		bodyText = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		bodyText = string(raw)
	}

	timestamp := now.UnixMilli()
	sig, err := BuildSignature(c.Secret, timestamp, method, path, bodyText)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"POLY_BUILDER_API_KEY":    c.ApiKey,
		"POLY_BUILDER_SIGNATURE":  sig,
		"POLY_BUILDER_TIMESTAMP":  strconv.FormatInt(timestamp, 10),
		"POLY_BUILDER_PASSPHRASE": c.Passphrase,
	}, nil
}
