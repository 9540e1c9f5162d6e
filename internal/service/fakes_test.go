package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"crm-console/internal/model"
)

var errOffline = errors.New("offline")

type fakePermissionAPI struct {
	set   model.PermissionSet
	err   error
	calls int
}

func (f *fakePermissionAPI) Permissions(_ context.Context, _ string) (model.PermissionSet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.set.Clone(), nil
}

type fakeRecordAPI struct {
	mu        sync.Mutex
	lists     map[string][]json.RawMessage
	listErr   error
	listCalls int

	mutationErr  error
	createResp   json.RawMessage
	updateResp   json.RawMessage
	reassignResp json.RawMessage
	calls        []string
}

func newFakeRecordAPI() *fakeRecordAPI {
	return &fakeRecordAPI{lists: map[string][]json.RawMessage{}}
}

func (f *fakeRecordAPI) List(_ context.Context, _, path string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[path], nil
}

func (f *fakeRecordAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.mutationErr
}

func (f *fakeRecordAPI) Create(_ context.Context, _, path string, _ interface{}) (json.RawMessage, error) {
	if err := f.record("POST " + path); err != nil {
		return nil, err
	}
	return f.createResp, nil
}

func (f *fakeRecordAPI) Update(_ context.Context, _, path, id string, _ map[string]interface{}) (json.RawMessage, error) {
	if err := f.record("PUT " + path + "/" + id); err != nil {
		return nil, err
	}
	return f.updateResp, nil
}

func (f *fakeRecordAPI) Delete(_ context.Context, _, path, id string) error {
	return f.record("DELETE " + path + "/" + id)
}

func (f *fakeRecordAPI) Reassign(_ context.Context, _, path, id, _ string) (json.RawMessage, error) {
	if err := f.record("PUT " + path + "/" + id + "/assign"); err != nil {
		return nil, err
	}
	return f.reassignResp, nil
}

type recordingNotifier struct {
	events []model.ChangeEvent
}

func (n *recordingNotifier) Notify(event model.ChangeEvent) {
	n.events = append(n.events, event)
}

func leadJSON(id, title, status string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"id": %q, "title": %q, "status": %q, "customer": {"name": "Customer %s"}}`,
		id, title, status, id,
	))
}

func leadList(n int) []json.RawMessage {
	out := make([]json.RawMessage, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, leadJSON(fmt.Sprint(i), fmt.Sprintf("Lead %02d", i), "NEW"))
	}
	return out
}

func mustResource(name string) model.Resource {
	res, ok := model.LookupResource(name)
	if !ok {
		panic("unknown resource " + name)
	}
	return res
}

func testSession() model.Session {
	return model.Session{Key: "session-key-1", UserID: "u1", Token: "token"}
}
