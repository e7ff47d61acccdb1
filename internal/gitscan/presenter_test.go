package gitscan_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devhealth/internal/gitscan"
)

const (
	testExpectedPresentationConstant = "\n📊 Git Repository Summary:\n" +
		"  Total repositories: 3\n" +
		"  Clean: 1, Dirty: 1, Errors: 1\n" +
		"\n📁 Repository Details:\n" +
		"  ✅ Clean api (main)\n" +
		"  ⚠️  Dirty web (feature/login) 🔄\n" +
		"  ❌ Error: git executable not found broken (unknown)\n"
)

func TestTextPresenterPresent(testInstance *testing.T) {
	testCases := []struct {
		name           string
		report         gitscan.ScanReport
		expectedOutput string
	}{
		{
			name:           "no_repositories",
			report:         gitscan.ScanReport{},
			expectedOutput: "  No git repositories found.\n",
		},
		{
			name: "mixed_repositories",
			report: gitscan.ScanReport{Repositories: []gitscan.RepositoryRecord{
				{Path: "/workspace/api", Status: gitscan.CleanStatus(), Branch: "main"},
				{Path: "/workspace/web", Status: gitscan.DirtyStatus(), Branch: "feature/login", HasUncommittedChanges: true, HasUnpushedCommits: true},
				{Path: "/workspace/broken/", Status: gitscan.ErrorStatus("git executable not found"), Branch: gitscan.UnknownBranch},
			}},
			expectedOutput: testExpectedPresentationConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			require.NoError(testInstance, gitscan.TextPresenter{}.Present(outputBuffer, testCase.report))
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestRepositoryDisplayName(testInstance *testing.T) {
	require.Equal(testInstance, "api", gitscan.RepositoryDisplayName("/workspace/api"))
	require.Equal(testInstance, "api", gitscan.RepositoryDisplayName("/workspace/api/"))
}
