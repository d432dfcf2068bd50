package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportKML_DirAndFilesAreExclusive(t *testing.T) {
	require.NoError(t, exportKMLCmd.Flags().Set("dir", t.TempDir()))
	t.Cleanup(func() { _ = exportKMLCmd.Flags().Set("dir", "") })

	err := exportKMLCmd.RunE(exportKMLCmd, []string{"session.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestExportKML_RequiresInput(t *testing.T) {
	err := exportKMLCmd.RunE(exportKMLCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dir")
}
