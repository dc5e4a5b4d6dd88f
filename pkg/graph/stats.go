package graph

import "gonum.org/v1/gonum/stat"

// Stats summarizes the topology of a store, intended for diagnostics
// and API responses.
type Stats struct {
	Nodes         int     `json:"nodes"`
	Relationships int     `json:"relationships"`
	MeanDegree    float64 `json:"mean_degree"`
	StdDevDegree  float64 `json:"stddev_degree"`
	MaxDegree     int     `json:"max_degree"`
}

// Stats computes degree statistics over the outgoing adjacency.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	degrees := make([]float64, 0, s.nodes.Len())
	maxDegree := 0
	s.nodes.Scan(func(n Node) bool {
		d := len(s.outgoing[n.ID])
		if d > maxDegree {
			maxDegree = d
		}
		degrees = append(degrees, float64(d))
		return true
	})

	st := Stats{
		Nodes:         s.nodes.Len(),
		Relationships: s.relCount,
		MaxDegree:     maxDegree,
	}
	if len(degrees) > 0 {
		st.MeanDegree, st.StdDevDegree = stat.MeanStdDev(degrees, nil)
	}
	return st
}
