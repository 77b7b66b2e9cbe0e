// Package insight produces free-text trade analysis through an external
// text-generation service. The core's obligation ends at serializing the
// selected trades into the summary the prompt consumes.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	apperrors "futures-journal/internal/errors"
	"futures-journal/internal/models"
	"futures-journal/pkg/utils"
)

// Tone selects the style preset for generated analysis.
type Tone string

const (
	ToneAnalytical Tone = "analytical"
	ToneSupportive Tone = "supportive"
	ToneBlunt      Tone = "blunt"
)

// ParseTone validates a tone name from user input.
func ParseTone(name string) (Tone, error) {
	switch Tone(name) {
	case ToneAnalytical, ToneSupportive, ToneBlunt:
		return Tone(name), nil
	}
	return "", fmt.Errorf("unknown tone %q (want analytical, supportive or blunt)", name)
}

var tonePrompts = map[Tone]string{
	ToneAnalytical: "You are a quantitative trading analyst. Review the trades factually, " +
		"pointing out patterns in entries, exits, excursion and sizing. Keep opinions out of it.",
	ToneSupportive: "You are an encouraging trading coach. Review the trades, highlight what " +
		"the trader did well, and frame mistakes as concrete things to practice.",
	ToneBlunt: "You are a no-nonsense trading mentor. Review the trades and state plainly " +
		"what was done badly and what it cost. Do not soften the assessment.",
}

// LLMClient is the text-generation collaborator contract.
type LLMClient interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service generates trade analysis text.
type Service struct {
	client LLMClient
	logger zerolog.Logger
}

// New creates an insight service around the given client.
func New(client LLMClient, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Analyze serializes the selected trades and asks the service for a
// tone-styled review. The call is retried with backoff; a service that
// stays down surfaces the last error.
func (s *Service) Analyze(ctx context.Context, trades models.TradeSet, tone Tone) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: no client configured", apperrors.ErrLLMUnavailable)
	}
	if len(trades) == 0 {
		return "", fmt.Errorf("%w: no trades selected for analysis", apperrors.ErrNoData)
	}

	prompt := "Analyze the following futures trades:\n\n" + TradeDigest(trades)
	s.logger.Debug().Int("trades", len(trades)).Str("tone", string(tone)).Msg("Requesting trade analysis")

	return utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() (string, error) {
		return s.client.CompleteWithSystem(ctx, tonePrompts[tone], prompt)
	})
}

// TradeDigest serializes the fields the analysis prompt consumes:
// instrument, strategy, entry/exit time, profit, MAE and MFE.
func TradeDigest(trades models.TradeSet) string {
	var b strings.Builder
	for i, t := range trades {
		fmt.Fprintf(&b, "Trade %d: %s", i+1, t.Instrument)
		if t.Strategy != "" {
			fmt.Fprintf(&b, " [%s]", t.Strategy)
		}
		b.WriteString("\n")
		if !t.EntryTime.IsZero() {
			fmt.Fprintf(&b, "  Entry: %s\n", t.EntryTime.Format("2006-01-02 15:04:05"))
		}
		if !t.ExitTime.IsZero() {
			fmt.Fprintf(&b, "  Exit:  %s\n", t.ExitTime.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(&b, "  Profit: %s  MAE: %s  MFE: %s\n",
			utils.FormatSignedUSD(t.Profit), utils.FormatUSD(t.MAE), utils.FormatUSD(t.MFE))
	}
	return b.String()
}
