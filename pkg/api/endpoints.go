package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/numen/pkg/kit"
	"github.com/hazyhaar/numen/pkg/metrics"
	"github.com/hazyhaar/numen/pkg/numerology"
	"github.com/hazyhaar/numen/pkg/wordsearch"
)

// Limits bound the work a single request may ask for.
type Limits struct {
	MaxLetters    int // longest word a search may generate
	MaxLimit      int // most words a search may return
	SearchBudget  int // candidates examined per search, negative = unbounded
	MaxRangeDays  int // longest date range, in days
	MaxBatchNames int
	BatchWorkers  int
}

// DefaultLimits are used for every zero field of the Limits given to NewEndpoints.
func DefaultLimits() Limits {
	return Limits{
		MaxLetters:    8,
		MaxLimit:      1000,
		SearchBudget:  5_000_000,
		MaxRangeDays:  366 * 100,
		MaxBatchNames: 100,
		BatchWorkers:  4,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxLetters <= 0 {
		l.MaxLetters = d.MaxLetters
	}
	if l.MaxLimit <= 0 {
		l.MaxLimit = d.MaxLimit
	}
	switch {
	case l.SearchBudget == 0:
		l.SearchBudget = d.SearchBudget
	case l.SearchBudget < 0:
		l.SearchBudget = 0
	}
	if l.MaxRangeDays <= 0 {
		l.MaxRangeDays = d.MaxRangeDays
	}
	if l.MaxBatchNames <= 0 {
		l.MaxBatchNames = d.MaxBatchNames
	}
	if l.BatchWorkers <= 0 {
		l.BatchWorkers = d.BatchWorkers
	}
	return l
}

// Shared request/response types used by the HTTP, MCP and CLI transports.

type NameRequest struct {
	Name      string
	BirthDate *time.Time
}

type NameResponse struct {
	numerology.NameSignature
	LifePath *int `json:"life_path,omitempty"`
	Maturity *int `json:"maturity,omitempty"`
}

type NameBatchRequest struct {
	Names []string `json:"names"`
}

type NameBatchResponse struct {
	Results []numerology.NameSignature `json:"results"`
}

type DateRequest struct {
	Date time.Time
}

type DateRangeRequest struct {
	Start     time.Time
	End       time.Time
	LifePaths []int
}

type DateRangeResponse struct {
	Count int                        `json:"count"`
	Dates []numerology.DateSignature `json:"dates"`
}

type SearchRequest struct {
	Limit      int            `json:"limit"`
	Target     map[string]int `json:"target"`
	MinLetters int            `json:"min_letters"`
	MaxLetters int            `json:"max_letters"`
}

type ReduceRequest struct {
	Number        float64 `json:"number"`
	IgnoreMasters bool    `json:"ignore_masters"`
}

type ReduceResponse struct {
	Number  float64 `json:"number"`
	Reduced int     `json:"reduced"`
}

// Endpoints are the numen actions, each wrapped with request ids, logging
// and metrics.
type Endpoints struct {
	NameSignature kit.Endpoint
	NameBatch     kit.Endpoint
	DateSignature kit.Endpoint
	DateRange     kit.Endpoint
	SearchWords   kit.Endpoint
	ReduceNumber  kit.Endpoint
}

// NewEndpoints builds the endpoint set. logger and m may be nil.
func NewEndpoints(limits Limits, logger *slog.Logger, m *metrics.Metrics) *Endpoints {
	limits = limits.withDefaults()
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Named(name), kit.RequestID(), kit.Logging(logger), m.Instrument())(ep)
	}
	return &Endpoints{
		NameSignature: wrap("name_signature", nameSignatureEndpoint()),
		NameBatch:     wrap("name_batch", nameBatchEndpoint(limits)),
		DateSignature: wrap("date_signature", dateSignatureEndpoint()),
		DateRange:     wrap("date_range", dateRangeEndpoint(limits)),
		SearchWords:   wrap("search_words", searchWordsEndpoint(limits, m)),
		ReduceNumber:  wrap("reduce_number", reduceNumberEndpoint()),
	}
}

func nameSignatureEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*NameRequest)
		if req.Name == "" {
			return nil, invalidf("name is empty")
		}
		sig, err := numerology.CalculateName(req.Name)
		if err != nil {
			return nil, err
		}
		resp := &NameResponse{NameSignature: sig}
		if req.BirthDate != nil {
			date, err := numerology.CalculateDate(*req.BirthDate)
			if err != nil {
				return nil, err
			}
			maturity, err := numerology.Maturity(sig.Expression, date.LifePath)
			if err != nil {
				return nil, err
			}
			resp.LifePath = &date.LifePath
			resp.Maturity = &maturity
		}
		return resp, nil
	}
}

func nameBatchEndpoint(limits Limits) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*NameBatchRequest)
		if len(req.Names) == 0 {
			return nil, invalidf("names array is empty")
		}
		if len(req.Names) > limits.MaxBatchNames {
			return nil, invalidf("too many names (max %d, got %d)", limits.MaxBatchNames, len(req.Names))
		}

		results := make([]numerology.NameSignature, len(req.Names))
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(limits.BatchWorkers)
		for i, name := range req.Names {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				sig, err := numerology.CalculateName(name)
				if err != nil {
					return fmt.Errorf("names[%d]: %w", i, err)
				}
				results[i] = sig
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return &NameBatchResponse{Results: results}, nil
	}
}

func dateSignatureEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*DateRequest)
		return numerology.CalculateDate(req.Date)
	}
}

func dateRangeEndpoint(limits Limits) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*DateRangeRequest)
		if days := numerology.DaysInRange(req.Start, req.End); days > limits.MaxRangeDays {
			return nil, invalidf("date range too long (max %d days, got %d)", limits.MaxRangeDays, days)
		}
		for _, lp := range req.LifePaths {
			if !numerology.IsDigitValue(lp) {
				return nil, invalidf("life path %d is not a reduced value", lp)
			}
		}
		dates, err := numerology.FindDates(req.Start, req.End, req.LifePaths)
		if err != nil {
			return nil, err
		}
		if dates == nil {
			dates = []numerology.DateSignature{}
		}
		return &DateRangeResponse{Count: len(dates), Dates: dates}, nil
	}
}

func searchWordsEndpoint(limits Limits, m *metrics.Metrics) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*SearchRequest)
		if req.MaxLetters > limits.MaxLetters {
			return nil, invalidf("max_letters too large (max %d, got %d)", limits.MaxLetters, req.MaxLetters)
		}
		if req.Limit > limits.MaxLimit {
			return nil, invalidf("limit too large (max %d, got %d)", limits.MaxLimit, req.Limit)
		}
		target, err := ParseTarget(req.Target)
		if err != nil {
			return nil, err
		}

		res, err := wordsearch.Search(wordsearch.Query{
			Limit:      req.Limit,
			Target:     target,
			MinLetters: req.MinLetters,
			MaxLetters: req.MaxLetters,
			Budget:     limits.SearchBudget,
		})
		if err != nil {
			return nil, err
		}
		m.ObserveSearch(res)
		return res, nil
	}
}

func reduceNumberEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*ReduceRequest)
		n, err := numerology.Integer(req.Number)
		if err != nil {
			return nil, err
		}
		reduce := numerology.Reduce
		if req.IgnoreMasters {
			reduce = numerology.ReduceIgnoringMasters
		}
		reduced, err := reduce(n)
		if err != nil {
			return nil, err
		}
		return &ReduceResponse{Number: req.Number, Reduced: reduced}, nil
	}
}

// ParseTarget converts attribute names as sent by clients ("soulUrge",
// "soul_urge", ...) into a search target.
func ParseTarget(raw map[string]int) (wordsearch.Target, error) {
	target := make(wordsearch.Target, len(raw))
	for name, v := range raw {
		attr, err := numerology.ParseAttribute(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", numerology.ErrInvalidSearchParameters, err)
		}
		if _, dup := target[attr]; dup {
			return nil, fmt.Errorf("%w: %s given more than once", numerology.ErrInvalidSearchParameters, attr)
		}
		target[attr] = v
	}
	return target, nil
}
