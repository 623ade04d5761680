package fragments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FragmentsTestSuite struct {
	suite.Suite
	dir string
}

func (s *FragmentsTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func TestFragmentsTestSuite(t *testing.T) {
	suite.Run(t, new(FragmentsTestSuite))
}

func (s *FragmentsTestSuite) writeFragment(name string) {
	err := os.WriteFile(filepath.Join(s.dir, name), []byte("png"), 0o644)
	s.Require().NoError(err)
}

func (s *FragmentsTestSuite) TestLoadClassifiesBySuffix() {
	s.writeFragment("trex_b.png")
	s.writeFragment("raptor_b.png")
	s.writeFragment("grin_m.png")
	s.writeFragment("beady_e.png")
	s.writeFragment("notes.txt") // no recognised suffix, ignored

	pools, err := Load(s.dir)
	s.Require().NoError(err)

	s.Len(pools.Bodies, 2)
	s.Len(pools.Mouths, 1)
	s.Len(pools.Eyes, 1)
	s.Equal(filepath.Join(s.dir, "grin_m.png"), pools.Mouths[0])
}

func (s *FragmentsTestSuite) TestLoadFailsOnEmptyPool() {
	s.writeFragment("trex_b.png")
	s.writeFragment("grin_m.png")
	// no eyes at all

	_, err := Load(s.dir)
	s.Require().Error(err)
	s.Contains(err.Error(), "eyes")
}

func (s *FragmentsTestSuite) TestLoadFailsOnMissingDirectory() {
	_, err := Load(filepath.Join(s.dir, "missing"))
	s.Require().Error(err)
}

func (s *FragmentsTestSuite) TestStem() {
	s.Equal("trex_b", Stem("/assets/fragments/trex_b.png"))
	s.Equal("beady_e", Stem("beady_e.png"))
}
