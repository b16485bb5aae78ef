package presenter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentiment/internal/domain"
)

func TestRecommendationMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "삼성전자을(를) 매수하세요 😊", RecommendationMessage("삼성전자", domain.RecommendationBuy))
	assert.Equal(t, "삼성전자을(를) 매수하지 마세요 😰", RecommendationMessage("삼성전자", domain.RecommendationAvoid))
	assert.Equal(t, "삼성전자에 대해 중립적인 입장입니다 😐", RecommendationMessage("삼성전자", domain.RecommendationNeutral))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MissingInputMessage, ErrorMessage(domain.ErrInvalidInput))
	assert.Contains(t, ErrorMessage(&domain.FetchError{URL: "u", Err: errors.New("refused")}), GenericErrorMessage)
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	report := domain.Report{
		Stock: "A Corp",
		Headlines: []domain.AnnotatedHeadline{
			domain.Annotate("A Corp profits surge", domain.SentimentPositive),
			domain.Annotate("A Corp faces lawsuit", domain.SentimentNegative),
		},
		Recommendation: domain.RecommendationNeutral,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "A Corp에 대해 중립적인 입장입니다 😐")
	assert.Contains(t, out, "😊 A Corp profits surge\n😰 A Corp faces lawsuit\n")
}

func TestWriteReportWithoutHeadlines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, domain.Report{Stock: "X", Recommendation: domain.RecommendationNeutral}))
	assert.NotContains(t, buf.String(), "뉴스 헤드라인")
}
