package score

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/score"
)

// GetScoreInput is the Huma input for computing the health score.
type GetScoreInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Owning user UUID"`
}

// GetScoreOutput is the Huma output for computing the health score.
type GetScoreOutput struct {
	Body score.Score
}

// scorer is the interface for computing a financial health score.
type scorer interface {
	GetScore(ctx context.Context, userID uuid.UUID) (*score.Score, error)
}

// GetScoreHandler handles GET /v1/score.
type GetScoreHandler struct {
	ScoreService scorer
	Logger       *logrus.Logger
}

// NewGetScoreHandler creates a new GetScoreHandler.
func NewGetScoreHandler(svc scorer, log *logrus.Logger) *GetScoreHandler {
	return &GetScoreHandler{ScoreService: svc, Logger: log}
}

// Register registers the score endpoint with the Huma API.
func (h *GetScoreHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-score",
		Method:      http.MethodGet,
		Path:        "/v1/score",
		Summary:     "Financial health score",
		Description: "Computes a 0-100 health score from the last three months of activity.",
		Tags:        []string{"Score"},
	}, h.handle)
}

func (h *GetScoreHandler) handle(ctx context.Context, input *GetScoreInput) (*GetScoreOutput, error) {
	userID, err := apierr.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("computeScoreMs")
	}
	result, err := h.ScoreService.GetScore(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.Map(err, "failed to compute score")
	}
	return &GetScoreOutput{Body: *result}, nil
}
