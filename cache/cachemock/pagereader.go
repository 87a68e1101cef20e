// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cachemock provides a gomock-based mock of cache.PageReader, in
// the shape go.uber.org/mock/mockgen produces for a single-method
// interface.
package cachemock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/types"
)

// PageReader is a mock of the cache.PageReader interface.
type PageReader struct {
	ctrl     *gomock.Controller
	recorder *PageReaderMockRecorder
}

// PageReaderMockRecorder is the mock recorder for PageReader.
type PageReaderMockRecorder struct {
	mock *PageReader
}

// NewPageReader creates a new mock instance.
func NewPageReader(ctrl *gomock.Controller) *PageReader {
	mock := &PageReader{ctrl: ctrl}
	mock.recorder = &PageReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *PageReader) EXPECT() *PageReaderMockRecorder {
	return m.recorder
}

// ReadBlock mocks base method.
func (m *PageReader) ReadBlock(vcomm types.VCommId, page types.PageId) (*block.Block, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadBlock", vcomm, page)
	ret0, _ := ret[0].(*block.Block)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReadBlock indicates an expected call of ReadBlock.
func (mr *PageReaderMockRecorder) ReadBlock(vcomm, page any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadBlock", reflect.TypeOf((*PageReader)(nil).ReadBlock), vcomm, page)
}
