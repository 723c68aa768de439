package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/supabase"
)

type stubRepo struct {
	products []*Product
	calls    int
}

func (s *stubRepo) ListActive(ctx context.Context) ([]*Product, error) {
	s.calls++
	return s.products, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	for _, p := range s.products {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

func TestProductDecodesLegacyPriceColumns(t *testing.T) {
	var p Product
	body := `{"id": 3, "title_en": "Wallet Hygiene", "price_eth": 0.01, "price_matic": "15", "minted_count": 4, "max_supply": 4, "is_active": true}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "3" || p.MintPriceETH == nil || p.MintPriceETH.String() != "0.01" || p.MintPriceMATIC.String() != "15" {
		t.Fatalf("unexpected product %+v", p)
	}
	if !p.SoldOut() {
		t.Fatal("expected sold out")
	}

	var q Product
	body = `{"id": "a1", "title_en": "x", "mint_price_eth": "0.02", "price_eth": "9"}`
	if err := json.Unmarshal([]byte(body), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.MintPriceETH.String() != "0.02" || q.MintPriceMATIC != nil {
		t.Fatalf("mint price must win over legacy column, got %+v", q)
	}
}

func TestRESTRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("is_active") == "eq.true":
			_, _ = w.Write([]byte(`[{"id":1,"title_en":"Guide","mint_price_eth":0.01,"is_active":true}]`))
		case q.Get("id") == "eq.1":
			_, _ = w.Write([]byte(`[{"id":1,"title_en":"Guide"}]`))
		case q.Get("id") == "eq.abc":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input syntax for type bigint"}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(server.Close)

	repo := NewRESTRepository(supabase.NewClient(server.URL, "anon", time.Second), "products")
	ctx := context.Background()

	list, err := repo.ListActive(ctx)
	if err != nil || len(list) != 1 || list[0].TitleEN != "Guide" {
		t.Fatalf("unexpected list %v %v", list, err)
	}
	if p, err := repo.GetByID(ctx, "1"); err != nil || p.ID != "1" {
		t.Fatalf("unexpected product %v %v", p, err)
	}
	if _, err := repo.GetByID(ctx, "2"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "abc"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for malformed id, got %v", err)
	}
}

func TestSQLRepository(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()
	repo := NewSQLRepository(sqlx.NewDb(mockDB, "postgres"), "products")

	columns := []string{"id", "title_en", "description_en", "mint_price_eth", "mint_price_matic", "max_supply", "minted_count", "is_active"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "products" WHERE is_active = true`)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("1", "Guide", nil, "0.01", nil, nil, int64(0), true))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id::text = $1`)).
		WithArgs("9").
		WillReturnRows(sqlmock.NewRows(columns))

	list, err := repo.ListActive(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list %v %v", list, err)
	}
	if list[0].MintPriceETH == nil || list[0].MintPriceMATIC != nil || list[0].DescriptionEN != nil {
		t.Fatalf("unexpected optional fields %+v", list[0])
	}
	if _, err := repo.GetByID(context.Background(), "9"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestServiceWithoutRedis(t *testing.T) {
	repo := &stubRepo{products: []*Product{{ID: "1", TitleEN: "Guide", IsActive: true}}}
	svc := NewService(repo, nil, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.ListActive(ctx); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
	if repo.calls != 2 {
		t.Fatalf("expected every call to hit the repository, got %d", repo.calls)
	}
	if _, err := svc.GetByID(ctx, "  "); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for blank id, got %v", err)
	}
	svc.InvalidateCache(ctx)
}

func TestServiceCachesInRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skipf("redis not available")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	repo := &stubRepo{products: []*Product{{ID: "1", TitleEN: "Guide", IsActive: true}}}
	svc := NewService(repo, client, time.Minute)
	svc.InvalidateCache(ctx)
	defer svc.InvalidateCache(ctx)

	for i := 0; i < 3; i++ {
		list, err := svc.ListActive(ctx)
		if err != nil || len(list) != 1 || list[0].ID != "1" {
			t.Fatalf("unexpected list %v %v", list, err)
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.calls)
	}
}

func TestHandler(t *testing.T) {
	repo := &stubRepo{products: []*Product{{ID: "1", TitleEN: "Guide", IsActive: true}}}
	h := NewHandler(NewService(repo, nil, 0)).Routes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/42", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
