package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type upsertDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt"`
}

func TestToUpdateData_AddToSet(t *testing.T) {
	update, err := ToUpdateData(bson.M{"$addToSet": bson.M{"topics": "ai"}})
	require.NoError(t, err)

	assert.Equal(t, "ai", update.AddToSet["topics"])
	assert.Empty(t, update.Set, "operator không được wrap vào $set, MongoDB sẽ từ chối đường dẫn bắt đầu bằng $")
}

func TestToUpdateData_Pull(t *testing.T) {
	update, err := ToUpdateData(bson.M{"$pull": bson.M{"hashtags": "#golang"}})
	require.NoError(t, err)

	assert.Equal(t, "#golang", update.Pull["hashtags"])
	assert.Empty(t, update.Set)
	assert.Empty(t, update.AddToSet)
}

func TestToUpdateData_SetWithUnset(t *testing.T) {
	update, err := ToUpdateData(bson.M{
		"$set":   bson.M{"name": "mới"},
		"$unset": bson.M{"old": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "mới", update.Set["name"])
	assert.Contains(t, update.Unset, "old")
}

func TestToUpdateData_PlainMapWrappedInSet(t *testing.T) {
	update, err := ToUpdateData(bson.M{"name": "a", "count": 2})
	require.NoError(t, err)

	assert.Equal(t, "a", update.Set["name"])
	assert.Contains(t, update.Set, "count")
	assert.Empty(t, update.AddToSet)
	assert.Empty(t, update.Pull)
}

func TestToUpdateData_UnsupportedOperator(t *testing.T) {
	_, err := ToUpdateData(bson.M{"$rename": bson.M{"a": "b"}})
	assert.Error(t, err, "operator không hỗ trợ phải bị từ chối thay vì wrap vào $set")
}

func TestToUpdateData_PassThrough(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"name": "x"}}
	update, err := ToUpdateData(original)
	require.NoError(t, err)
	assert.Same(t, original, update)
}

func TestBuildUpsertUpdate_StructData(t *testing.T) {
	now := int64(1700000000000)
	update, err := buildUpsertUpdate(upsertDoc{Name: "x"}, now)
	require.NoError(t, err)

	// createdAt không được nằm trong $set: vừa xung đột với $setOnInsert
	// trên cùng đường dẫn, vừa ghi đè createdAt của document đã tồn tại về 0
	assert.NotContains(t, update.Set, "createdAt")
	assert.Equal(t, now, update.Set["updatedAt"])
	assert.Equal(t, now, update.SetOnInsert["createdAt"])
	assert.Equal(t, "x", update.Set["name"])
}

func TestBuildUpsertUpdate_OperatorData(t *testing.T) {
	now := int64(1700000000000)
	update, err := buildUpsertUpdate(bson.M{"$set": bson.M{"name": "y", "createdAt": int64(5)}}, now)
	require.NoError(t, err)

	assert.NotContains(t, update.Set, "createdAt")
	assert.Equal(t, "y", update.Set["name"])
	assert.Equal(t, now, update.SetOnInsert["createdAt"])
}
