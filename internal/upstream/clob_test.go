package upstream

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/signer"
)

const bookJSON = `{
	"market":"0xabc","asset_id":"123",
	"bids":[{"price":"0.45","size":"100"},{"price":"0.44","size":"50"},{"price":"0.43","size":"25"}],
	"asks":[{"price":"0.46","size":"80"},{"price":"0.47","size":"40"}]
}`

func TestGetOrderbookParsesLevels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/book" || r.URL.Query().Get("token_id") != "123" {
			t.Fatalf("unexpected call %s %v", r.URL.Path, r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bookJSON))
	}))
	defer srv.Close()

	book, err := NewClobClient(srv.URL, nil).GetOrderbook(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book.Bids) != 3 || len(book.Asks) != 2 {
		t.Fatalf("unexpected book: %+v", book)
	}
	if book.Bids[0].Price.String() != "0.45" {
		t.Fatalf("expected decimal price 0.45, got %s", book.Bids[0].Price)
	}
}

func TestGetOrderbookWithDepthTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bookJSON))
	}))
	defer srv.Close()

	book, err := NewClobClient(srv.URL, nil).GetOrderbookWithDepth(context.Background(), "123", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book.Bids) != 1 || len(book.Asks) != 1 {
		t.Fatalf("expected depth 1 on both sides, got %d/%d", len(book.Bids), len(book.Asks))
	}
}

func TestCreateOrderForwardsBodyAndAttribution(t *testing.T) {
	var gotBody model.OrderSubmission
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order" || r.Method != http.MethodPost {
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		gotHeaders = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"orderId":"o-1","status":"live"}`))
	}))
	defer srv.Close()

	creds := &signer.BuilderCredentials{
		ApiKey:     "bk",
		Secret:     base64.URLEncoding.EncodeToString([]byte("s")),
		Passphrase: "bp",
	}
	sub := model.OrderSubmission{
		Order: model.SignedOrder{
			Salt:      42,
			Maker:     "0x1111111111111111111111111111111111111111",
			TokenID:   "123",
			Side:      "BUY",
			Signature: "0xdead",
		},
		Owner:     "api-key-1",
		OrderType: "GTC",
	}

	result, err := NewClobClient(srv.URL, creds).CreateOrder(context.Background(), sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.OrderID != "o-1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if gotBody.Order.Salt != 42 || gotBody.Order.Signature != "0xdead" || gotBody.Owner != "api-key-1" {
		t.Fatalf("order not forwarded unmodified: %+v", gotBody)
	}
	if gotHeaders.Get("POLY_BUILDER_API_KEY") != "bk" || gotHeaders.Get("POLY_BUILDER_SIGNATURE") == "" {
		t.Fatalf("missing attribution headers: %v", gotHeaders)
	}
}

func TestCreateOrderWithoutCredsOmitsAttribution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("POLY_BUILDER_API_KEY") != "" {
			t.Fatalf("unexpected attribution header")
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := NewClobClient(srv.URL, nil).CreateOrder(context.Background(), model.OrderSubmission{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListTradesQueryShaping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("market") != "0xabc" || q.Get("limit") != "10" || q.Has("offset") {
			t.Fatalf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"t1","market":"0xabc","asset_id":"123","side":"BUY","price":"0.5","size":"10"}]`))
	}))
	defer srv.Close()

	limit := 10
	trades, err := NewClobClient(srv.URL, nil).ListTrades(context.Background(), model.TradeQuery{
		Market: "0xabc",
		Limit:  &limit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 || trades[0].ID != "t1" {
		t.Fatalf("unexpected trades: %+v", trades)
	}
}
