package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/mallard-db/mallard"
	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
)

// Handle represents an open database instance
type Handle struct {
	instance *mallard.Instance
	engine   *db.Engine
}

var (
	handlesMu  sync.Mutex
	handles    = make(map[int]*Handle)
	nextHandle = 1
)

// Response mirrors the server protocol for consistency
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type QueryResponse struct {
	Columns []string   `json:"columns"`
	Rows    []core.Row `json:"rows"`
	TimeMs  float64    `json:"time_ms"`
}

type ExecResponse struct {
	RowsAffected int64   `json:"rows_affected"`
	TimeMs       float64 `json:"time_ms"`
}

type SchemaResponse struct {
	OK     bool    `json:"ok"`
	TimeMs float64 `json:"time_ms"`
}

func registerHandle(instance *mallard.Instance) C.int {
	handlesMu.Lock()
	defer handlesMu.Unlock()

	handle := nextHandle
	nextHandle++
	handles[handle] = &Handle{
		instance: instance,
		engine:   instance.Engine(),
	}
	return C.int(handle)
}

//export mallard_open_memory
func mallard_open_memory() C.int {
	instance, err := mallard.OpenMemory()
	if err != nil {
		return -1
	}
	return registerHandle(instance)
}

//export mallard_open_file
func mallard_open_file(path *C.char) C.int {
	instance, err := mallard.Open(C.GoString(path))
	if err != nil {
		return -1
	}
	return registerHandle(instance)
}

//export mallard_close
func mallard_close(handle C.int) {
	handlesMu.Lock()
	h, ok := handles[int(handle)]
	delete(handles, int(handle))
	handlesMu.Unlock()

	if ok {
		h.instance.Close()
	}
}

//export mallard_execute
func mallard_execute(handle C.int, query *C.char) *C.char {
	handlesMu.Lock()
	h, ok := handles[int(handle)]
	handlesMu.Unlock()
	if !ok {
		return makeErrorResponse("Invalid handle")
	}

	result, err := h.engine.Run(C.GoString(query), core.Bindings{})
	if err != nil {
		return makeErrorResponse(err.Error())
	}

	var resp Response

	switch r := result.(type) {
	case db.QueryResult:
		data, _ := json.Marshal(QueryResponse{
			Columns: r.Columns,
			Rows:    r.Rows,
			TimeMs:  r.ElapsedSec * 1000,
		})
		resp = Response{
			Success: true,
			Type:    "query",
			Result:  data,
		}

	case db.ExecResult:
		data, _ := json.Marshal(ExecResponse{
			RowsAffected: r.RowsAffected,
			TimeMs:       r.ElapsedSec * 1000,
		})
		resp = Response{
			Success: true,
			Type:    "exec",
			Result:  data,
		}

	case db.SchemaResult:
		data, _ := json.Marshal(SchemaResponse{
			OK:     r.OK,
			TimeMs: r.ElapsedSec * 1000,
		})
		resp = Response{
			Success: true,
			Type:    "schema",
			Result:  data,
		}

	default:
		resp = Response{
			Success: true,
			Type:    "unknown",
		}
	}

	jsonData, _ := json.Marshal(resp)
	return C.CString(string(jsonData))
}

//export mallard_free
func mallard_free(ptr *C.char) {
	C.free(unsafe.Pointer(ptr))
}

func makeErrorResponse(msg string) *C.char {
	resp := Response{
		Success: false,
		Error:   msg,
	}
	jsonData, _ := json.Marshal(resp)
	return C.CString(string(jsonData))
}

func main() {}
