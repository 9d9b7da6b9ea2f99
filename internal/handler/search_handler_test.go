package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/sanjayganatra/satsang-qa-portal/internal/ai"
	"github.com/sanjayganatra/satsang-qa-portal/internal/config"
	"github.com/sanjayganatra/satsang-qa-portal/internal/corpus"
	"github.com/sanjayganatra/satsang-qa-portal/internal/handler"
	"github.com/sanjayganatra/satsang-qa-portal/internal/middleware"
	"github.com/sanjayganatra/satsang-qa-portal/internal/pkg/errcode"
	"github.com/sanjayganatra/satsang-qa-portal/internal/search"
)

const testCSV = `Question,Answer,Translated Question,Translated Answer
"सर्दी जुकाम में जप कैसे करें","आराम करें और जप करते रहें","How to chant when having cold and cough","Rest and keep chanting"
"क्रोध को कैसे नियंत्रित करें","नाम जप से शांति मिलती है","How to control my anger","Chanting brings peace"
"प्रभु सब कुछ छीन लेते हैं क्यों","यह उनकी कृपा है","Why does lord take everything away","It is grace"
`

type stubEmbedder struct {
	axes map[string][]float32
}

func (s *stubEmbedder) vectorFor(text string) []float32 {
	low := strings.ToLower(text)
	for marker, vec := range s.axes {
		if strings.Contains(low, marker) {
			return vec
		}
	}
	return []float32{0, 0, 0}
}

func (s *stubEmbedder) Encode(ctx context.Context, texts []string, intent ai.Intent) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.vectorFor(t)
	}
	return out, nil
}

func (s *stubEmbedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	return s.vectorFor(text), nil
}

func (s *stubEmbedder) Identity() string {
	return "stub/test"
}

type apiResponse struct {
	Code    uint32          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testCSV))
	}))
	t.Cleanup(srv.Close)

	store := corpus.NewStore(corpus.NewLoader(srv.Client(), srv.URL), time.Hour)
	emb := &stubEmbedder{axes: map[string][]float32{
		"cold":  {1, 0, 0},
		"sick":  {1, 0, 0},
		"anger": {0, 1, 0},
		"छीन":   {0, 0, 1},
	}}
	searchEngine := search.NewEngine(store, emb, search.NewBridge(nil))

	deps := handler.RouterDeps{
		Search: handler.NewSearchHandler(searchEngine, config.SearchConfig{
			TopK:              40,
			SemanticWeight:    0.75,
			OverrideThreshold: 0.62,
		}, 30),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine
}

func doGet(t *testing.T, router http.Handler, path string) apiResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var out apiResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestSearchRequiresQuery(t *testing.T) {
	router := setupRouter(t)
	out := doGet(t, router, "/api/v1/search")
	require.EqualValues(t, errcode.ErrInvalid, out.Code)
}

func TestSearchRejectsBadParameters(t *testing.T) {
	router := setupRouter(t)
	for _, path := range []string{
		"/api/v1/search?q=jap&mode=psychic",
		"/api/v1/search?q=jap&top_k=lots",
		"/api/v1/search?q=jap&semantic_weight=2",
	} {
		out := doGet(t, router, path)
		require.EqualValues(t, errcode.ErrInvalid, out.Code, "path %s", path)
	}
}

func TestSearchLiteralMode(t *testing.T) {
	router := setupRouter(t)
	out := doGet(t, router, "/api/v1/search?mode=literal&q="+url.QueryEscape("सब कुछ छीन लिया"))
	require.Zero(t, out.Code)

	var data struct {
		Mode    string `json:"mode"`
		Total   int    `json:"total"`
		Results []struct {
			Record struct {
				ID int `json:"id"`
			} `json:"record"`
			Method string `json:"method"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, "literal", data.Mode)
	require.Equal(t, 1, data.Total)
	require.Equal(t, 2, data.Results[0].Record.ID)
	require.Equal(t, "Literal", data.Results[0].Method)
}

func TestSearchHybridMode(t *testing.T) {
	router := setupRouter(t)
	out := doGet(t, router, "/api/v1/search?q=I+am+Sick")
	require.Zero(t, out.Code)

	var data struct {
		Total   int `json:"total"`
		Results []struct {
			Record struct {
				ID int `json:"id"`
			} `json:"record"`
			Method     string  `json:"method"`
			FinalScore float64 `json:"final_score"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, 1, data.Total)
	require.Equal(t, 0, data.Results[0].Record.ID)
	require.Equal(t, "Hybrid", data.Results[0].Method)
	require.Greater(t, data.Results[0].FinalScore, 0.8)
}

func TestBrowseEndpoint(t *testing.T) {
	router := setupRouter(t)
	out := doGet(t, router, "/api/v1/browse")
	require.Zero(t, out.Code)

	var data struct {
		Total   int `json:"total"`
		Results []struct {
			Method string `json:"method"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, 3, data.Total)
	for _, r := range data.Results {
		require.Equal(t, "Browse", r.Method)
	}
}

func TestKeywordsEndpoint(t *testing.T) {
	router := setupRouter(t)
	out := doGet(t, router, "/api/v1/keywords")
	require.Zero(t, out.Code)

	var data struct {
		Keywords []string `json:"keywords"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Contains(t, data.Keywords, "anger")

	out = doGet(t, router, "/api/v1/keywords?top_n=zero")
	require.EqualValues(t, errcode.ErrInvalid, out.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router := setupRouter(t)
	out := doGet(t, router, "/api/v1/stats")
	require.Zero(t, out.Code)

	var data struct {
		Records int `json:"records"`
		Indexes int `json:"indexes"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, 3, data.Records)
}
