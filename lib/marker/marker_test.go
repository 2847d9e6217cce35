package marker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	mocks "gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/gen/mocks/lib/kegg"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
)

type markerSuite struct {
	suite.Suite
	ctx     context.Context
	service *mocks.Service
	out     *bytes.Buffer
}

func TestMarkerSuite(t *testing.T) {
	suite.Run(t, new(markerSuite))
}

func (s *markerSuite) SetupTest() {
	s.ctx = context.Background()
	s.service = &mocks.Service{}
	s.out = &bytes.Buffer{}
}

func (s *markerSuite) newMarker(opts Options) *Marker {
	m := New(s.service, opts, s.out)
	m.now = func() time.Time { return time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func (s *markerSuite) writeInput(lines string) string {
	path := filepath.Join(s.T().TempDir(), "enzymes.txt")
	s.Require().NoError(os.WriteFile(path, []byte(lines), 0600))
	return path
}

func (s *markerSuite) TestLoadIdentifiers() {
	path := s.writeInput("1.1.1.1\n\n2.7.1.1\n1.1.1.1\n")
	ids, err := LoadIdentifiers(path)
	s.NoError(err)
	s.Equal([]string{"1.1.1.1", "", "2.7.1.1", "1.1.1.1"}, ids)
}

func (s *markerSuite) TestLoadIdentifiersMissingFile() {
	_, err := LoadIdentifiers(filepath.Join(s.T().TempDir(), "nope.txt"))
	var inputErr *InputError
	s.Require().True(errors.As(err, &inputErr))
	s.True(os.IsNotExist(errors.Unwrap(err)))
}

func (s *markerSuite) TestResolvePathways() {
	lookup := []string{"path:map00010", "path:map00020", "path:map00030"}
	tests := []struct {
		name     string
		opts     Options
		lookup   []string
		want     []string
		wantText string
	}{
		{
			name:     "first pathway only",
			opts:     Options{Verbose: true},
			lookup:   lookup,
			want:     []string{"path:map00010"},
			wantText: "1.1.1.1 is a member of 3 pathways\n",
		},
		{
			name:     "all pathways unmodified",
			opts:     Options{Verbose: true, AllPaths: true},
			lookup:   lookup,
			want:     lookup,
			wantText: "1.1.1.1 is a member of 3 pathways\n",
		},
		{
			name:     "empty lookup, first only",
			opts:     Options{Verbose: true},
			lookup:   nil,
			want:     nil,
			wantText: "1.1.1.1 is a member of 0 pathways\n",
		},
		{
			name:     "empty lookup, all paths",
			opts:     Options{AllPaths: true},
			lookup:   []string{},
			want:     []string{},
			wantText: "",
		},
		{
			name:     "single pathway",
			opts:     Options{Verbose: true},
			lookup:   []string{"path:map00010"},
			want:     []string{"path:map00010"},
			wantText: "1.1.1.1 is a member of 1 pathway\n",
		},
	}
	for _, tt := range tests {
		s.SetupTest()
		s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return(tt.lookup, nil).Once()

		got, err := s.newMarker(tt.opts).ResolvePathways(s.ctx, "1.1.1.1")
		s.NoError(err, tt.name)
		s.Equal(tt.want, got, tt.name)
		s.Equal(tt.wantText, s.out.String(), tt.name)
		s.service.AssertExpectations(s.T())
	}
}

func (s *markerSuite) TestResolvePathwaysDoesNotModifyLookup() {
	lookup := []string{"path:map00010", "path:map00020"}
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return(lookup, nil).Once()

	got, err := s.newMarker(Options{}).ResolvePathways(s.ctx, "1.1.1.1")
	s.NoError(err)
	s.Len(got, 1)
	s.Equal([]string{"path:map00010", "path:map00020"}, lookup)
}

func (s *markerSuite) TestResolvePathwaysKO() {
	s.service.On("LookupPathwaysByKO", s.ctx, "K00001").Return([]string{"path:ko00010"}, nil).Once()

	got, err := s.newMarker(Options{Kind: enzyme.KO}).ResolvePathways(s.ctx, "K00001")
	s.NoError(err)
	s.Equal([]string{"path:ko00010"}, got)
	s.service.AssertNotCalled(s.T(), "LookupPathwaysByEnzyme", mock.Anything, mock.Anything)
	s.service.AssertExpectations(s.T())
}

func (s *markerSuite) TestResolvePathwaysServiceError() {
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return(nil, errors.New("timeout")).Once()

	_, err := s.newMarker(Options{}).ResolvePathways(s.ctx, "1.1.1.1")
	var serviceErr *ServiceError
	s.Require().True(errors.As(err, &serviceErr))
	s.Equal("lookup", serviceErr.Op)
	s.Equal("1.1.1.1", serviceErr.ID)
	s.EqualError(errors.Unwrap(err), "timeout")
}

func (s *markerSuite) TestCollectUniquePathways() {
	got := CollectUniquePathways(
		[]string{"path:map00010", "path:map00020"},
		nil,
		[]string{"path:map00020", "path:map00030", "path:map00010"},
	)
	s.Equal([]string{"path:map00010", "path:map00020", "path:map00030"}, got)

	// idempotent
	s.Equal(got, CollectUniquePathways(got))
	s.Equal(got, CollectUniquePathways(CollectUniquePathways(got)))

	s.Empty(CollectUniquePathways())
	s.Empty(CollectUniquePathways(nil, []string{}))
}

func (s *markerSuite) TestCollectUniquePathwaysUnion() {
	// The marked set is the union of the per-enzyme results, whichever enzyme contributed them.
	a := []string{"path:map00010"}
	b := []string{"path:map00020"}
	s.ElementsMatch([]string{"path:map00010", "path:map00020"}, CollectUniquePathways(a, b))
	s.ElementsMatch([]string{"path:map00010", "path:map00020"}, CollectUniquePathways(b, a))
	s.ElementsMatch([]string{"path:map00010", "path:map00020"}, CollectUniquePathways(append(a, b...), b, a))
}

func (s *markerSuite) TestMarkAndSave() {
	ids := []string{"1.1.1.1", "2.7.1.1"}
	dir := s.T().TempDir()
	s.service.On("MarkPathway", s.ctx, "path:map00010", ids).Return("https://kegg/img.png", nil).Once()
	s.service.On("FetchAndSaveImage", s.ctx, "https://kegg/img.png", filepath.Join(dir, "path:map00010.gif")).Return(nil).Once()

	err := s.newMarker(Options{Verbose: true, OutputDir: dir}).MarkAndSave(s.ctx, "path:map00010", ids)
	s.NoError(err)
	s.Equal("marking enzymes in path:map00010\n", s.out.String())
	s.service.AssertExpectations(s.T())
}

func (s *markerSuite) TestMarkAndSaveErrors() {
	ids := []string{"1.1.1.1"}
	s.service.On("MarkPathway", s.ctx, "path:map00010", ids).Return("", errors.New("mapper down")).Once()
	s.service.On("MarkPathway", s.ctx, "path:map00020", ids).Return("https://kegg/img.png", nil).Once()
	s.service.On("FetchAndSaveImage", s.ctx, "https://kegg/img.png", "path:map00020.gif").Return(errors.New("disk full")).Once()

	m := s.newMarker(Options{})
	var serviceErr *ServiceError

	err := m.MarkAndSave(s.ctx, "path:map00010", ids)
	s.Require().True(errors.As(err, &serviceErr))
	s.Equal("mark", serviceErr.Op)

	err = m.MarkAndSave(s.ctx, "path:map00020", ids)
	s.Require().True(errors.As(err, &serviceErr))
	s.Equal("save", serviceErr.Op)
	s.Equal("path:map00020", serviceErr.ID)
}

func (s *markerSuite) TestRunDuplicateIdentifiers() {
	path := s.writeInput("1.1.1.1\n1.1.1.1\n")
	ids := []string{"1.1.1.1", "1.1.1.1"}
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return([]string{"path:map00010", "path:map00020"}, nil).Twice()
	s.service.On("MarkPathway", s.ctx, "path:map00010", ids).Return("https://kegg/img.png", nil).Once()
	s.service.On("FetchAndSaveImage", s.ctx, "https://kegg/img.png", "path:map00010.gif").Return(nil).Once()

	summary, err := s.newMarker(Options{}).Run(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(ids, summary.Identifiers)
	s.Equal([]string{"path:map00010"}, summary.Pathways)
	s.service.AssertExpectations(s.T())
	s.service.AssertNumberOfCalls(s.T(), "MarkPathway", 1)
}

func (s *markerSuite) TestRunAllPathsPassesEveryIdentifier() {
	path := s.writeInput("1.1.1.1\n\n2.7.1.1\n")
	ids := []string{"1.1.1.1", "", "2.7.1.1"}
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return([]string{"path:map00010", "path:map00020"}, nil).Once()
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "").Return(nil, nil).Once()
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "2.7.1.1").Return([]string{"path:map00020", "path:map00030"}, nil).Once()
	for _, pathway := range []string{"path:map00010", "path:map00020", "path:map00030"} {
		s.service.On("MarkPathway", s.ctx, pathway, ids).Return("ref-"+pathway, nil).Once()
		s.service.On("FetchAndSaveImage", s.ctx, "ref-"+pathway, pathway+".gif").Return(nil).Once()
	}

	summary, err := s.newMarker(Options{AllPaths: true, Verbose: true}).Run(s.ctx, path)
	s.Require().NoError(err)
	s.Equal([]string{"path:map00010", "path:map00020", "path:map00030"}, summary.Pathways)
	s.service.AssertExpectations(s.T())

	out := s.out.String()
	s.True(strings.HasPrefix(out, "Started at 2022-03-01T12:00:00Z\n"))
	s.Contains(out, "1.1.1.1 is a member of 2 pathways\n")
	s.Contains(out, " is a member of 0 pathways\n")
	s.Contains(out, "querying KEGG for pathway images")
	s.Contains(out, "marking enzymes in path:map00030\n")
	s.True(strings.HasSuffix(out, "Finished at 2022-03-01T12:00:00Z\n"))
}

func (s *markerSuite) TestRunEmptyInput() {
	path := s.writeInput("")

	summary, err := s.newMarker(Options{Verbose: true}).Run(s.ctx, path)
	s.Require().NoError(err)
	s.Empty(summary.Identifiers)
	s.Empty(summary.Pathways)
	s.service.AssertNotCalled(s.T(), "LookupPathwaysByEnzyme", mock.Anything, mock.Anything)
	s.service.AssertNotCalled(s.T(), "MarkPathway", mock.Anything, mock.Anything, mock.Anything)
	s.NotContains(s.out.String(), "querying KEGG")
}

func (s *markerSuite) TestRunQuietPrintsNothing() {
	path := s.writeInput("1.1.1.1\n")
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return(nil, nil).Once()

	_, err := s.newMarker(Options{Verbose: false}).Run(s.ctx, path)
	s.NoError(err)
	s.Empty(s.out.String())
}

func (s *markerSuite) TestRunAbortsOnLookupError() {
	path := s.writeInput("1.1.1.1\n2.7.1.1\n")
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return(nil, errors.New("503")).Once()

	_, err := s.newMarker(Options{}).Run(s.ctx, path)
	var serviceErr *ServiceError
	s.Require().True(errors.As(err, &serviceErr))
	s.service.AssertNotCalled(s.T(), "LookupPathwaysByEnzyme", mock.Anything, "2.7.1.1")
	s.service.AssertNotCalled(s.T(), "MarkPathway", mock.Anything, mock.Anything, mock.Anything)
}

func (s *markerSuite) TestRunAbortsOnMarkError() {
	path := s.writeInput("1.1.1.1\n")
	ids := []string{"1.1.1.1"}
	s.service.On("LookupPathwaysByEnzyme", s.ctx, "1.1.1.1").Return([]string{"path:map00010", "path:map00020"}, nil).Once()
	s.service.On("MarkPathway", s.ctx, "path:map00010", ids).Return("", errors.New("boom")).Once()
	s.service.On("MarkPathway", s.ctx, "path:map00020", ids).Return("ref", nil).Maybe()

	_, err := s.newMarker(Options{AllPaths: true}).Run(s.ctx, path)
	s.Error(err)
	s.service.AssertNotCalled(s.T(), "MarkPathway", mock.Anything, "path:map00020", mock.Anything)
	s.service.AssertNotCalled(s.T(), "FetchAndSaveImage", mock.Anything, mock.Anything, mock.Anything)
}

func (s *markerSuite) TestRunMissingInput() {
	_, err := s.newMarker(Options{}).Run(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	var inputErr *InputError
	s.True(errors.As(err, &inputErr))
}

func (s *markerSuite) TestMarkAllWorkers() {
	ids := []string{"1.1.1.1"}
	pathways := []string{"path:map00010", "path:map00020", "path:map00030", "path:map00040"}

	var mut sync.Mutex
	saved := map[string]bool{}
	s.service.On("MarkPathway", mock.Anything, mock.AnythingOfType("string"), ids).Return(
		func(_ context.Context, pathway string, _ []string) string { return "ref-" + pathway },
		nil,
	)
	s.service.On("FetchAndSaveImage", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(
		func(_ context.Context, ref, path string) error {
			mut.Lock()
			defer mut.Unlock()
			saved[path] = true
			return nil
		},
	)

	err := s.newMarker(Options{Workers: 3}).MarkAll(s.ctx, pathways, ids)
	s.NoError(err)
	s.Len(saved, len(pathways))
	for _, pathway := range pathways {
		s.True(saved[pathway+".gif"], pathway)
	}
}

func (s *markerSuite) TestMarkAllWorkersError() {
	ids := []string{"1.1.1.1"}
	s.service.On("MarkPathway", mock.Anything, mock.AnythingOfType("string"), ids).Return("", errors.New("mapper down"))

	err := s.newMarker(Options{Workers: 2}).MarkAll(s.ctx, []string{"path:map00010", "path:map00020"}, ids)
	var serviceErr *ServiceError
	s.Require().True(errors.As(err, &serviceErr))
	s.Equal("mark", serviceErr.Op)
	s.service.AssertNotCalled(s.T(), "FetchAndSaveImage", mock.Anything, mock.Anything, mock.Anything)
}
