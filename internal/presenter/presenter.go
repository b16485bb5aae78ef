// Package presenter renders pipeline results as end-user text.
package presenter

import (
	"errors"
	"fmt"
	"io"

	"StockSentiment/internal/domain"
)

const (
	MissingInputMessage = "종목명을 입력해주세요."
	GenericErrorMessage = "오류가 발생했습니다"
)

// RecommendationMessage formats the verdict for the stock.
func RecommendationMessage(stock string, rec domain.Recommendation) string {
	switch rec {
	case domain.RecommendationBuy:
		return fmt.Sprintf("%s을(를) 매수하세요 %s", stock, domain.SentimentPositive.Glyph())
	case domain.RecommendationAvoid:
		return fmt.Sprintf("%s을(를) 매수하지 마세요 %s", stock, domain.SentimentNegative.Glyph())
	default:
		return fmt.Sprintf("%s에 대해 중립적인 입장입니다 %s", stock, domain.SentimentNeutral.Glyph())
	}
}

// HeadlineLine renders one annotated headline as "<glyph> <headline>".
func HeadlineLine(a domain.AnnotatedHeadline) string {
	return fmt.Sprintf("%s %s", a.Glyph, a.Headline)
}

// ErrorMessage maps a pipeline failure to the text shown to the user.
func ErrorMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return MissingInputMessage
	}
	return fmt.Sprintf("%s: %v", GenericErrorMessage, err)
}

// WriteReport prints the verdict followed by the headline breakdown.
func WriteReport(w io.Writer, report domain.Report) error {
	if _, err := fmt.Fprintf(w, "%s에 대한 분석 결과\n\n%s\n\n", report.Stock, RecommendationMessage(report.Stock, report.Recommendation)); err != nil {
		return err
	}
	if len(report.Headlines) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "뉴스 헤드라인 상세 분석"); err != nil {
		return err
	}
	for _, a := range report.Headlines {
		if _, err := fmt.Fprintln(w, HeadlineLine(a)); err != nil {
			return err
		}
	}
	return nil
}
