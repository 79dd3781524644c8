package distance

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/ports"
	"context"
)

// MockPair is one scripted route. An empty Status means OK.
type MockPair struct {
	From, To string
	Meters   float64
	Seconds  float64
	Status   string
}

type MockCall struct {
	Origin       string
	Destinations []string
}

// MockMatrixProvider answers from scripted pairs keyed by Location.Key.
// Unscripted pairs come back as NOT_FOUND elements. Whole calls can be
// scripted to fail by zero-based call index.
type MockMatrixProvider struct {
	m             map[string]ports.RouteElement
	max           int
	batchStatus   map[int]string
	transportErrs map[int]error

	Calls []MockCall
}

func NewMockMatrixProvider(pairs []MockPair) *MockMatrixProvider {
	m := make(map[string]ports.RouteElement, len(pairs))
	for _, p := range pairs {
		status := p.Status
		if status == "" {
			status = ports.StatusOK
		}
		m[p.From+"|"+p.To] = ports.RouteElement{Status: status, DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockMatrixProvider{
		m:             m,
		batchStatus:   map[int]string{},
		transportErrs: map[int]error{},
	}
}

// WithMaxDestinations sets the cap reported to callers.
func (p *MockMatrixProvider) WithMaxDestinations(n int) *MockMatrixProvider {
	p.max = n
	return p
}

// FailBatch makes call number call report a batch-level status.
func (p *MockMatrixProvider) FailBatch(call int, status string) *MockMatrixProvider {
	p.batchStatus[call] = status
	return p
}

// FailTransport makes call number call return err.
func (p *MockMatrixProvider) FailTransport(call int, err error) *MockMatrixProvider {
	p.transportErrs[call] = err
	return p
}

func (p *MockMatrixProvider) MaxDestinations() int { return p.max }

func (p *MockMatrixProvider) RouteBatch(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
	mode domain.TravelMode,
) (ports.RouteBatch, error) {
	call := len(p.Calls)
	rec := MockCall{Origin: origin.Key(), Destinations: make([]string, len(destinations))}
	for i, d := range destinations {
		rec.Destinations[i] = d.Key()
	}
	p.Calls = append(p.Calls, rec)

	if err := ctx.Err(); err != nil {
		return ports.RouteBatch{}, err
	}
	if err, ok := p.transportErrs[call]; ok {
		return ports.RouteBatch{}, err
	}
	if status, ok := p.batchStatus[call]; ok {
		return ports.RouteBatch{Status: status}, nil
	}

	out := ports.RouteBatch{Status: ports.StatusOK, Elements: make([]ports.RouteElement, len(destinations))}
	for i, d := range rec.Destinations {
		e, ok := p.m[rec.Origin+"|"+d]
		if !ok {
			e = ports.RouteElement{Status: ports.StatusNotFound}
		}
		out.Elements[i] = e
	}
	return out, nil
}
