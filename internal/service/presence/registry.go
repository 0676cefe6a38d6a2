// Package presence 维护用户在线状态与会话索引
// 一个用户可同时持有多个会话（多设备），一个会话断开只摘除自身，
// 不影响同一用户的其他会话
package presence

import (
	"sync"

	"go.uber.org/zap"
)

// Session 一条可下发事件的在线会话
// 由 websocket 连接实现，测试中可用假实现替代
type Session interface {
	// ID 会话唯一标识（连接级，不是用户级）
	ID() string
	// Emit 向该会话下发一个事件
	Emit(event string, data any)
}

// Registry 在线会话注册表
// userId -> sessionId -> Session 的双层索引，外加群房间索引
type Registry struct {
	rwLock sync.RWMutex
	// users 用户的全部在线会话
	users map[string]map[string]Session
	// sessionUser 会话归属的用户，断开时反查
	sessionUser map[string]string
	// rooms 群房间内的会话
	rooms map[string]map[string]Session
	// sessionRooms 会话加入过的房间，断开时反查
	sessionRooms map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		users:        make(map[string]map[string]Session),
		sessionUser:  make(map[string]string),
		rooms:        make(map[string]map[string]Session),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Join 将会话登记到用户名下，重复 Join 幂等
// 同一会话换用户身份时先从旧用户摘除
func (r *Registry) Join(userId string, sess Session) {
	if userId == "" || sess == nil {
		return
	}
	r.rwLock.Lock()
	defer r.rwLock.Unlock()
	sid := sess.ID()
	if prev, ok := r.sessionUser[sid]; ok && prev != userId {
		r.removeFromUserLocked(prev, sid)
	}
	if r.users[userId] == nil {
		r.users[userId] = make(map[string]Session)
	}
	r.users[userId][sid] = sess
	r.sessionUser[sid] = userId
	zap.L().Debug("会话上线", zap.String("userId", userId), zap.String("sessionId", sid))
}

// JoinRoom 将会话加入群房间
func (r *Registry) JoinRoom(roomId string, sess Session) {
	if roomId == "" || sess == nil {
		return
	}
	r.rwLock.Lock()
	defer r.rwLock.Unlock()
	sid := sess.ID()
	if r.rooms[roomId] == nil {
		r.rooms[roomId] = make(map[string]Session)
	}
	r.rooms[roomId][sid] = sess
	if r.sessionRooms[sid] == nil {
		r.sessionRooms[sid] = make(map[string]struct{})
	}
	r.sessionRooms[sid][roomId] = struct{}{}
}

// Leave 会话断开，从用户索引和所有房间摘除
// 对未登记过的会话调用是安全的
func (r *Registry) Leave(sessionId string) {
	r.rwLock.Lock()
	defer r.rwLock.Unlock()
	if userId, ok := r.sessionUser[sessionId]; ok {
		r.removeFromUserLocked(userId, sessionId)
		zap.L().Debug("会话下线", zap.String("userId", userId), zap.String("sessionId", sessionId))
	}
	for roomId := range r.sessionRooms[sessionId] {
		if set := r.rooms[roomId]; set != nil {
			delete(set, sessionId)
			if len(set) == 0 {
				delete(r.rooms, roomId)
			}
		}
	}
	delete(r.sessionRooms, sessionId)
}

func (r *Registry) removeFromUserLocked(userId, sessionId string) {
	if set := r.users[userId]; set != nil {
		delete(set, sessionId)
		if len(set) == 0 {
			delete(r.users, userId)
		}
	}
	delete(r.sessionUser, sessionId)
}

// SessionsFor 返回用户当前的全部在线会话，离线时返回空切片
func (r *Registry) SessionsFor(userId string) []Session {
	r.rwLock.RLock()
	defer r.rwLock.RUnlock()
	set := r.users[userId]
	out := make([]Session, 0, len(set))
	for _, s := range set {
		out = append(out, s)
	}
	return out
}

// RoomSessions 返回群房间内的全部会话
func (r *Registry) RoomSessions(roomId string) []Session {
	r.rwLock.RLock()
	defer r.rwLock.RUnlock()
	set := r.rooms[roomId]
	out := make([]Session, 0, len(set))
	for _, s := range set {
		out = append(out, s)
	}
	return out
}

// IsOnline 用户是否至少有一个在线会话
func (r *Registry) IsOnline(userId string) bool {
	r.rwLock.RLock()
	defer r.rwLock.RUnlock()
	return len(r.users[userId]) > 0
}

// EmitToUser 向用户的全部在线会话广播事件，返回触达的会话数
func (r *Registry) EmitToUser(userId, event string, data any) int {
	sessions := r.SessionsFor(userId)
	for _, s := range sessions {
		s.Emit(event, data)
	}
	return len(sessions)
}

// EmitToRoom 向群房间广播事件，exceptSessionId 非空时跳过该会话
func (r *Registry) EmitToRoom(roomId, exceptSessionId, event string, data any) int {
	sessions := r.RoomSessions(roomId)
	n := 0
	for _, s := range sessions {
		if exceptSessionId != "" && s.ID() == exceptSessionId {
			continue
		}
		s.Emit(event, data)
		n++
	}
	return n
}
