package seed

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/store"
)

func TestLoadDemoData(t *testing.T) {
	st := store.New(store.WithCounselor(DefaultCounselor()))
	require.NoError(t, LoadDemoData(st, zerolog.Nop()))

	snap := st.Snapshot()
	require.Len(t, snap.Students, 2)
	assert.Equal(t, "张三", snap.Students[0].Name)
	assert.Equal(t, []appModels.Tag{appModels.TagAcademicWarning}, snap.Students[0].Tags)
	assert.Equal(t, []appModels.Tag{appModels.TagPartyMember}, snap.Students[1].Tags)
	assert.Len(t, snap.Honors, 1)
	assert.Equal(t, snap.Students[0].ID, snap.Honors[0].StudentID)
	assert.Len(t, snap.Stories, 1)
	assert.Equal(t, "陈老师", snap.Counselor.Name)

	// Second load is skipped
	require.NoError(t, LoadDemoData(st, zerolog.Nop()))
	assert.Len(t, st.Snapshot().Students, 2)
}
