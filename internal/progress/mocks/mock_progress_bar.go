// SPDX-License-Identifier: Apache-2.0

package mocks

type Bar struct {
	AddFn   func(int) error
	Add64Fn func(int64) error
	CloseFn func() error
}

func (m *Bar) Add(i int) error {
	return m.AddFn(i)
}

func (m *Bar) Add64(i int64) error {
	return m.Add64Fn(i)
}

func (m *Bar) Close() error {
	return m.CloseFn()
}
