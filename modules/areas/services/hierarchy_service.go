package services

import (
	"context"

	"github.com/floodops/pafs/modules/areas/domain/area"
	"github.com/floodops/pafs/pkg/serrors"
)

// AreaHierarchyService resolves area nodes and their bounded parent chain.
// The hierarchy is fixed-depth (RMA -> PSO Area -> EA Area), so resolution
// is at most two dependent lookups, never a recursive walk.
type AreaHierarchyService struct {
	repo area.Repository
}

func NewAreaHierarchyService(repo area.Repository) *AreaHierarchyService {
	return &AreaHierarchyService{repo: repo}
}

func (s *AreaHierarchyService) GetByID(ctx context.Context, id int64) (area.Area, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return area.Area{}, err
	}
	if a == nil {
		return area.Area{}, serrors.NotFound("AREA_NOT_FOUND", "area not found")
	}
	return *a, nil
}

// GetWithParents resolves the node plus, where applicable, its PSO parent
// and that PSO's EA parent. A PSO node is its own PSO result. Parents that
// are missing or of an unexpected type stay nil.
func (s *AreaHierarchyService) GetWithParents(ctx context.Context, id int64) (area.WithParents, error) {
	node, err := s.GetByID(ctx, id)
	if err != nil {
		return area.WithParents{}, err
	}

	out := area.WithParents{Node: node}

	var pso *area.Area
	switch node.Type {
	case area.TypePSOArea:
		pso = &node
	case area.TypeRMA:
		if node.ParentID != nil {
			parent, err := s.repo.GetByID(ctx, *node.ParentID)
			if err != nil {
				return area.WithParents{}, err
			}
			if parent != nil && parent.Type == area.TypePSOArea {
				pso = parent
			}
		}
	}
	out.PSO = pso

	if pso != nil && pso.ParentID != nil {
		grand, err := s.repo.GetByID(ctx, *pso.ParentID)
		if err != nil {
			return area.WithParents{}, err
		}
		if grand != nil && grand.Type == area.TypeEAArea {
			out.EA = grand
		}
	}

	return out, nil
}

// RFCCCode derives the regional coordination code for an area: a PSO area
// carries it directly, an RMA inherits it from its PSO parent. The second
// return value is false when no code is resolvable, which is a distinct,
// non-fatal condition.
func (s *AreaHierarchyService) RFCCCode(ctx context.Context, a area.Area) (string, bool, error) {
	switch a.Type {
	case area.TypePSOArea:
		return a.SubType, a.SubType != "", nil
	case area.TypeRMA:
		if a.ParentID == nil {
			return "", false, nil
		}
		parent, err := s.repo.GetByID(ctx, *a.ParentID)
		if err != nil {
			return "", false, err
		}
		if parent == nil || parent.Type != area.TypePSOArea || parent.SubType == "" {
			return "", false, nil
		}
		return parent.SubType, true, nil
	default:
		return "", false, nil
	}
}
