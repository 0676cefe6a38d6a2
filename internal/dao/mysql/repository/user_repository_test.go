package repository

import (
	"strconv"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/errorx"
	"cedar_roots_server/pkg/util/random"
)

func newTestRepos(t *testing.T, name string) *Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	err = db.AutoMigrate(&model.UserInfo{})
	if err != nil {
		t.Fatal(err)
	}
	return NewRepositories(db)
}

func TestUserCreateAndFind(t *testing.T) {
	repos := newTestRepos(t, "repo_user")

	uuid := "U" + strconv.Itoa(random.GetRandomInt(11))
	user := &model.UserInfo{
		Uuid:     uuid,
		Nickname: "apylee",
		Avatar:   "avatars/apylee.png",
	}
	if err := repos.User.Create(user); err != nil {
		t.Fatal(err)
	}

	found, err := repos.User.FindByUuid(uuid)
	if err != nil {
		t.Fatal(err)
	}
	if found.Nickname != "apylee" {
		t.Fatalf("unexpected nickname %q", found.Nickname)
	}
}

func TestUserFindByUuidsSkipsMissing(t *testing.T) {
	repos := newTestRepos(t, "repo_user_batch")

	uuids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		uuid := "U" + random.GetNowAndLenRandomString(13)
		uuids = append(uuids, uuid)
		u := &model.UserInfo{Uuid: uuid, Nickname: "member"}
		if err := repos.User.Create(u); err != nil {
			t.Fatal(err)
		}
	}

	users, err := repos.User.FindByUuids(append(uuids, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserNotFoundCode(t *testing.T) {
	repos := newTestRepos(t, "repo_user_missing")

	_, err := repos.User.FindByUuid("nope")
	if !errorx.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
