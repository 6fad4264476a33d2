package roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/grading"
	"github.com/dmitrijs2005/gradesys/internal/logging"
	"github.com/dmitrijs2005/gradesys/internal/models"
	"github.com/dmitrijs2005/gradesys/internal/repositories/snapshot"
)

type fakeSnap struct {
	loadOut []*models.Student
	loadErr error
	saveErr error

	saves int
	last  []*models.Student
}

func (f *fakeSnap) Load(context.Context) ([]*models.Student, error) {
	return f.loadOut, f.loadErr
}

func (f *fakeSnap) Save(_ context.Context, st []*models.Student) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.last = make([]*models.Student, len(st))
	for i, s := range st {
		f.last[i] = s.Clone()
	}
	return nil
}

func seed() []*models.Student {
	return []*models.Student{
		models.NewStudent("Ada Lovelace", "csc/22u/0001", 25, 15, 40), // 80 A
		models.NewStudent("Alan Turing", "csc/22u/0002", 20, 10, 25),  // 55 C
		models.NewStudent("Grace Hopper", "csc/22u/0003", 28, 18, 30), // 76 A
		models.NewStudent("Bob", "csc/22u/0004", 10, 5, 20),           // 35 F
	}
}

func openStore(t *testing.T, snap *fakeSnap) *Store {
	t.Helper()
	s, err := Open(context.Background(), snap, logging.Discard())
	require.NoError(t, err)
	return s
}

func names(st []*models.Student) []string {
	out := make([]string, len(st))
	for i, s := range st {
		out[i] = s.Name()
	}
	return out
}

func TestOpen_LoadError(t *testing.T) {
	_, err := Open(context.Background(), &fakeSnap{loadErr: common.ErrStorage}, logging.Discard())
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestQuery_AllReturnsRosterInOrder(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: seed()})

	assert.Equal(t, names(seed()), names(s.Query("", AllGrades)))
	assert.Equal(t, names(seed()), names(s.Query("", "All")))
	assert.Equal(t, names(seed()), names(s.Query("  ", "")))
}

func TestQuery_NameAndGrade(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: seed()})

	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing", "Grace Hopper"}, names(s.Query("A", AllGrades)))
	assert.Equal(t, []string{"Ada Lovelace"}, names(s.Query("Lo", AllGrades)))
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, names(s.Query("", "A")))
	assert.Equal(t, []string{"Grace Hopper"}, names(s.Query("HOP", "a")))
	assert.Empty(t, s.Query("turing", "A"))
	assert.Empty(t, s.Query("", "Z"))
}

func TestQuery_PropertyMatchesPredicate(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: seed()})

	for _, sub := range []string{"", "a", "an", "o", "xyz"} {
		for _, g := range grading.Letters() {
			for _, st := range s.Query(sub, string(g)) {
				require.Equal(t, g, st.Grade())
				require.Contains(t, toLower(st.Name()), sub)
			}
		}
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

func TestFilter_IsRestartableAndLive(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, &fakeSnap{loadOut: seed()})
	seq := s.Filter("", "A")

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 2, count())
	assert.Equal(t, 2, count())

	require.NoError(t, s.Add(ctx, models.NewStudent("Edsger", "x/1", 30, 20, 50)))
	assert.Equal(t, 3, count())
}

func TestAdd_AppendsAndPersists(t *testing.T) {
	snap := &fakeSnap{}
	s := openStore(t, snap)

	require.NoError(t, s.Add(context.Background(), models.NewStudent("Ada", "csc/1", 25, 15, 40)))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, snap.saves)
	require.Len(t, snap.last, 1)
	assert.Equal(t, "CSC/1", snap.last[0].IDNumber())
}

func TestAdd_AllowsDuplicateIDs(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: seed()})

	require.NoError(t, s.Add(context.Background(), models.NewStudent("Twin", "CSC/22U/0001", 1, 1, 1)))
	assert.Equal(t, 5, s.Len())
}

func TestAdd_StoresCopy(t *testing.T) {
	s := openStore(t, &fakeSnap{})
	st := models.NewStudent("Ada", "csc/1", 25, 15, 40)
	require.NoError(t, s.Add(context.Background(), st))

	st.SetScores(0, 0, 0)
	got, ok := s.Find("csc/1")
	require.True(t, ok)
	assert.Equal(t, 80, got.Total())

	got.SetName("changed")
	again, _ := s.Find("csc/1")
	assert.Equal(t, "Ada", again.Name())
}

func TestAdd_RollsBackOnSaveError(t *testing.T) {
	snap := &fakeSnap{loadOut: seed(), saveErr: common.ErrStorage}
	s := openStore(t, snap)

	err := s.Add(context.Background(), models.NewStudent("X", "x", 1, 1, 1))
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, 4, s.Len())
}

func TestUpdate_FirstMatchRecomputesAndPersists(t *testing.T) {
	ctx := context.Background()
	snap := &fakeSnap{loadOut: append(seed(), models.NewStudent("Dup", "csc/22u/0002", 0, 0, 0))}
	s := openStore(t, snap)

	err := s.Update(ctx, "CSC/22U/0002", StudentUpdate{Name: "Alan M. Turing", CA: 30, Practical: 20, Exam: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.saves)

	got, ok := s.Find("csc/22u/0002")
	require.True(t, ok)
	assert.Equal(t, "Alan M. Turing", got.Name())
	assert.Equal(t, 100, got.Total())
	assert.Equal(t, grading.A, got.Grade())

	dups := s.Query("dup", AllGrades)
	require.Len(t, dups, 1)
	assert.Equal(t, 0, dups[0].Total())
}

func TestUpdate_NotFound(t *testing.T) {
	snap := &fakeSnap{loadOut: seed()}
	s := openStore(t, snap)

	err := s.Update(context.Background(), "nope", StudentUpdate{Name: "x"})
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 0, snap.saves)
}

func TestUpdate_RollsBackOnSaveError(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: seed(), saveErr: errors.New("disk")})

	err := s.Update(context.Background(), "csc/22u/0001", StudentUpdate{Name: "New", CA: 0})
	require.Error(t, err)

	got, _ := s.Find("csc/22u/0001")
	assert.Equal(t, "Ada Lovelace", got.Name())
	assert.Equal(t, 80, got.Total())
}

func TestDelete_RemovesAllMatches(t *testing.T) {
	ctx := context.Background()
	snap := &fakeSnap{loadOut: append(seed(), models.NewStudent("Dup", "csc/22u/0001", 0, 0, 0))}
	s := openStore(t, snap)

	n, err := s.Delete(ctx, "csc/22u/0001")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, s.Len())
	assert.Len(t, snap.last, 3)

	_, ok := s.Find("csc/22u/0001")
	assert.False(t, ok)
}

func TestDelete_NotFound(t *testing.T) {
	snap := &fakeSnap{loadOut: seed()}
	s := openStore(t, snap)

	_, err := s.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 0, snap.saves)
}

func TestDelete_RollsBackOnSaveError(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: seed(), saveErr: common.ErrStorage})

	_, err := s.Delete(context.Background(), "csc/22u/0001")
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, 4, s.Len())
}

func TestDistinctGrades_SortedAscending(t *testing.T) {
	s := openStore(t, &fakeSnap{loadOut: []*models.Student{
		models.NewStudent("f", "1", 0, 0, 0),
		models.NewStudent("a", "2", 30, 20, 50),
		models.NewStudent("c", "3", 20, 10, 20),
		models.NewStudent("a2", "4", 30, 20, 40),
	}})

	assert.Equal(t, []grading.Letter{grading.A, grading.C, grading.F}, s.DistinctGrades())
	assert.Equal(t, []string{AllGrades, "A", "C", "F"}, s.FilterChoices())
}

func TestDistinctGrades_Empty(t *testing.T) {
	s := openStore(t, &fakeSnap{})
	assert.Empty(t, s.DistinctGrades())
}

func TestStore_JSONRoundTripRepairsDerivedFields(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Ada","id_number":"csc/1","ca":25,"practical":15,"exam":40,"total":1,"grade":"F"}
	]`), 0o600))

	s, err := Open(ctx, snapshot.NewJSONFile(path), logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, models.NewStudent("Bob", "csc/2", 10, 10, 10)))

	reopened, err := Open(ctx, snapshot.NewJSONFile(path), logging.Discard())
	require.NoError(t, err)

	got := reopened.Query("", AllGrades)
	require.Len(t, got, 2)
	assert.Equal(t, 80, got[0].Total())
	assert.Equal(t, grading.A, got[0].Grade())
	assert.Equal(t, s.Query("", AllGrades), got)
}
