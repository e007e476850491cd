package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floodops/pafs/modules/areas/domain/area"
	"github.com/floodops/pafs/pkg/serrors"
)

type fakeAreaRepo struct {
	areas map[int64]area.Area
	err   error
}

func (f *fakeAreaRepo) GetByID(ctx context.Context, id int64) (*area.Area, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.areas[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func ptrInt64(v int64) *int64 { return &v }

func testTree() *fakeAreaRepo {
	return &fakeAreaRepo{areas: map[int64]area.Area{
		1: {ID: 1, Name: "England", Type: area.TypeCountry},
		2: {ID: 2, Name: "North", Type: area.TypeEAArea, ParentID: ptrInt64(1)},
		3: {ID: 3, Name: "Yorkshire", Type: area.TypePSOArea, ParentID: ptrInt64(2), SubType: "YO"},
		4: {ID: 4, Name: "Leeds City Council", Type: area.TypeRMA, ParentID: ptrInt64(3), SubType: "LBD"},
		5: {ID: 5, Name: "Orphan RMA", Type: area.TypeRMA},
		6: {ID: 6, Name: "Misfiled RMA", Type: area.TypeRMA, ParentID: ptrInt64(2)},
		7: {ID: 7, Name: "Internal Drainage Board", Type: area.TypeAuthority},
	}}
}

func TestGetByID(t *testing.T) {
	svc := NewAreaHierarchyService(testTree())

	t.Run("found", func(t *testing.T) {
		a, err := svc.GetByID(context.Background(), 4)
		require.NoError(t, err)
		require.Equal(t, "Leeds City Council", a.Name)
	})

	t.Run("absent is NotFound", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		var de *serrors.Error
		require.ErrorAs(t, err, &de)
		require.Equal(t, 404, de.Status)
		require.Equal(t, "AREA_NOT_FOUND", de.Code)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc := NewAreaHierarchyService(&fakeAreaRepo{err: errors.New("connection refused")})
		_, err := svc.GetByID(context.Background(), 4)
		require.Error(t, err)
		var de *serrors.Error
		require.False(t, errors.As(err, &de))
	})
}

func TestGetWithParents(t *testing.T) {
	svc := NewAreaHierarchyService(testTree())

	t.Run("RMA resolves PSO and EA", func(t *testing.T) {
		aw, err := svc.GetWithParents(context.Background(), 4)
		require.NoError(t, err)
		require.Equal(t, int64(4), aw.Node.ID)
		require.NotNil(t, aw.PSO)
		require.Equal(t, int64(3), aw.PSO.ID)
		require.NotNil(t, aw.EA)
		require.Equal(t, int64(2), aw.EA.ID)
	})

	t.Run("PSO node is its own PSO result", func(t *testing.T) {
		aw, err := svc.GetWithParents(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, aw.PSO)
		require.Equal(t, int64(3), aw.PSO.ID)
		require.NotNil(t, aw.EA)
		require.Equal(t, int64(2), aw.EA.ID)
	})

	t.Run("RMA without parent has nil PSO and EA", func(t *testing.T) {
		aw, err := svc.GetWithParents(context.Background(), 5)
		require.NoError(t, err)
		require.Nil(t, aw.PSO)
		require.Nil(t, aw.EA)
	})

	t.Run("RMA with non-PSO parent has nil PSO", func(t *testing.T) {
		aw, err := svc.GetWithParents(context.Background(), 6)
		require.NoError(t, err)
		require.Nil(t, aw.PSO)
		require.Nil(t, aw.EA)
	})

	t.Run("authority resolves no parents", func(t *testing.T) {
		aw, err := svc.GetWithParents(context.Background(), 7)
		require.NoError(t, err)
		require.Nil(t, aw.PSO)
		require.Nil(t, aw.EA)
	})
}

func TestRFCCCode(t *testing.T) {
	repo := testTree()
	svc := NewAreaHierarchyService(repo)
	ctx := context.Background()

	t.Run("PSO returns own sub type", func(t *testing.T) {
		code, ok, err := svc.RFCCCode(ctx, repo.areas[3])
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "YO", code)
	})

	t.Run("RMA inherits PSO parent code", func(t *testing.T) {
		code, ok, err := svc.RFCCCode(ctx, repo.areas[4])
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "YO", code)
	})

	t.Run("orphan RMA has no resolvable code", func(t *testing.T) {
		_, ok, err := svc.RFCCCode(ctx, repo.areas[5])
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("RMA under non-PSO parent has no resolvable code", func(t *testing.T) {
		_, ok, err := svc.RFCCCode(ctx, repo.areas[6])
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("other types have no code", func(t *testing.T) {
		_, ok, err := svc.RFCCCode(ctx, repo.areas[1])
		require.NoError(t, err)
		require.False(t, ok)
	})
}
