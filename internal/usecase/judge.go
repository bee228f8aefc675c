package usecase

import (
	"context"
	"fmt"
	"time"

	"Horary/internal/domain/models"
	drepo "Horary/internal/domain/repository"
	"Horary/internal/services/horary"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
	"Horary/pkg/util"
)

// JudgmentService orchestrates one judgment request end to end: geocoding,
// time resolution, ephemeris lookup, question analysis, chart assembly and
// the judgment procedure itself.
type JudgmentService struct {
	cfg       *config.Config
	log       *xlogger.Logger
	geocoder  drepo.Geocoder
	ephemeris drepo.Ephemeris
	metrics   drepo.Metrics

	analyzer *horary.QuestionAnalyzer
	calc     *horary.Calculator
	judge    *horary.Judge
}

// NewJudgmentService creates the judgment orchestrator.
func NewJudgmentService(
	cfg *config.Config,
	log *xlogger.Logger,
	geocoder drepo.Geocoder,
	ephemeris drepo.Ephemeris,
	metrics drepo.Metrics,
	analyzer *horary.QuestionAnalyzer,
	calc *horary.Calculator,
	judge *horary.Judge,
) *JudgmentService {
	return &JudgmentService{
		cfg:       cfg,
		log:       log,
		geocoder:  geocoder,
		ephemeris: ephemeris,
		metrics:   metrics,
		analyzer:  analyzer,
		calc:      calc,
		judge:     judge,
	}
}

// Judge answers one horary question. Failures never escape as errors: every
// outcome, including infrastructure trouble, is a JudgmentResponse with the
// matching verdict so the API contract stays uniform.
func (s *JudgmentService) Judge(ctx context.Context, req *models.JudgmentRequest) (resp *models.JudgmentResponse) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("judgment panicked", xlogger.Any("panic", r))
			s.metrics.RecordError("panic")
			resp = s.errorResponse(req.Question, models.VerdictError,
				fmt.Sprintf("internal error: %v", r))
		}
		s.metrics.RecordLatency("judge", time.Since(start).Seconds())
	}()

	geo, err := s.geocoder.Resolve(ctx, req.Location)
	if err != nil {
		s.log.Warn("geocoding failed",
			xlogger.String("location", req.Location), xlogger.Error(err))
		s.metrics.RecordError("geocode")
		return s.errorResponse(req.Question, models.VerdictLocationError,
			fmt.Sprintf("could not resolve location %q", req.Location))
	}

	local, utc, tzName, err := s.resolveTime(req)
	if err != nil {
		s.metrics.RecordError("time_parse")
		return s.errorResponse(req.Question, models.VerdictError, err.Error())
	}

	snap, err := s.ephemeris.Positions(ctx, utc, geo.Latitude, geo.Longitude)
	if err != nil {
		s.log.Error("ephemeris lookup failed", xlogger.Error(err))
		s.metrics.RecordError("ephemeris")
		return s.errorResponse(req.Question, models.VerdictError,
			"ephemeris service unavailable")
	}

	qa := s.analyzer.Analyze(req.Question)
	if len(req.ManualHouses) >= 2 {
		qa.Significators.QuerentHouse = req.ManualHouses[0]
		qa.Significators.QuesitedHouse = req.ManualHouses[1]
		qa.RelevantHouses = req.ManualHouses
	}

	chart := s.calc.BuildChart(snap, local, utc, tzName,
		geo.Latitude, geo.Longitude, geo.DisplayName)

	result := s.judge.Judge(chart, qa.Significators.QuesitedHouse, horary.Overrides{
		IgnoreRadicality: req.IgnoreRadicality,
		IgnoreVoidMoon:   req.IgnoreVoidMoon,
		IgnoreCombustion: req.IgnoreCombustion,
		IgnoreSaturn7th:  req.IgnoreSaturn7th,
		ExaltationBoost:  req.ExaltationConfidenceBoost,
	})

	s.metrics.RecordJudgment(string(result.Verdict))
	s.metrics.RecordConfidence(result.Confidence)

	s.log.Info("judgment rendered",
		xlogger.String("verdict", string(result.Verdict)),
		xlogger.Int("confidence", result.Confidence),
		xlogger.String("question_type", qa.QuestionType))

	return &models.JudgmentResponse{
		Question:   req.Question,
		Judgment:   result.Verdict,
		Confidence: result.Confidence,
		Reasoning:  result.Reasoning,
		Timing:     result.Timing,

		Chart:            horary.SerializeChart(chart),
		QuestionAnalysis: qa,
		MoonStory:        s.calc.MoonStory(chart),
		Factors:          result.Factors,
		SolarFactors:     result.SolarFactors,
		GeneralInfo:      s.calc.GeneralInfo(chart),
		Considerations:   s.judge.Considerations(chart),
	}
}

// resolveTime turns the request's date, time and timezone fields into the
// chart's local and UTC instants.
func (s *JudgmentService) resolveTime(req *models.JudgmentRequest) (time.Time, time.Time, string, error) {
	tzName := req.Timezone
	if tzName == "" {
		tzName = s.cfg.Timezone.Default
	}
	if tzName == "" {
		tzName = "UTC"
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		s.log.Warn("unknown timezone, falling back to UTC",
			xlogger.String("timezone", tzName))
		tzName = "UTC"
		loc = time.UTC
	}

	if req.UseCurrentTime || req.Date == "" {
		now := time.Now().In(loc)
		return now, now.UTC(), tzName, nil
	}

	local, err := util.ParseLocalDateTime(req.Date, req.Time, loc)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid date/time %q %q", req.Date, req.Time)
	}
	return local, local.UTC(), tzName, nil
}

func (s *JudgmentService) errorResponse(question string, verdict models.Verdict, reason string) *models.JudgmentResponse {
	return &models.JudgmentResponse{
		Question:   question,
		Judgment:   verdict,
		Confidence: 0,
		Reasoning:  []string{reason},
		Error:      reason,
	}
}
