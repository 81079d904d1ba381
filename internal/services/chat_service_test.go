package services

import (
	"testing"

	"teamlink/internal/models"
	"teamlink/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChat(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	sender := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)
	receiver := seedUser(t, db, "lisi", "lisi@example.com", models.UserRoleEmployee, nil)

	chat, err := svc.Send(sender.ID, &SendChatInput{ReceiverUserID: receiver.ID, Message: "在吗"})
	require.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.False(t, chat.IsRead)
}

func TestSendChatValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	sender := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)

	_, err := svc.Send(sender.ID, &SendChatInput{ReceiverUserID: sender.ID, Message: "自言自语"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Send(sender.ID, &SendChatInput{ReceiverUserID: "someone", Message: "  "})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Send(sender.ID, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Send(sender.ID, &SendChatInput{ReceiverUserID: "no-such-user", Message: "你好"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestListConversation(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	alice := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)
	bob := seedUser(t, db, "lisi", "lisi@example.com", models.UserRoleEmployee, nil)
	carol := seedUser(t, db, "wangwu", "wangwu@example.com", models.UserRoleEmployee, nil)

	_, err := svc.Send(alice.ID, &SendChatInput{ReceiverUserID: bob.ID, Message: "在吗"})
	require.NoError(t, err)
	_, err = svc.Send(bob.ID, &SendChatInput{ReceiverUserID: alice.ID, Message: "在的"})
	require.NoError(t, err)
	_, err = svc.Send(alice.ID, &SendChatInput{ReceiverUserID: carol.ID, Message: "别的会话"})
	require.NoError(t, err)

	// 双向消息都在会话里，第三人的消息不混入
	chats, err := svc.ListConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "在吗", chats[0].Message)
	assert.Equal(t, "在的", chats[1].Message)
}

func TestMarkConversationReadAndCountUnread(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	alice := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)
	bob := seedUser(t, db, "lisi", "lisi@example.com", models.UserRoleEmployee, nil)
	carol := seedUser(t, db, "wangwu", "wangwu@example.com", models.UserRoleEmployee, nil)

	_, err := svc.Send(bob.ID, &SendChatInput{ReceiverUserID: alice.ID, Message: "一"})
	require.NoError(t, err)
	_, err = svc.Send(bob.ID, &SendChatInput{ReceiverUserID: alice.ID, Message: "二"})
	require.NoError(t, err)
	_, err = svc.Send(carol.ID, &SendChatInput{ReceiverUserID: alice.ID, Message: "三"})
	require.NoError(t, err)

	unread, err := svc.CountUnread(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	// 只清掉来自bob的未读
	require.NoError(t, svc.MarkConversationRead(alice.ID, bob.ID))

	unread, err = svc.CountUnread(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}
