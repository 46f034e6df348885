// SPDX-License-Identifier: MIT

// Package report renders optimizer results.
//
// WriteText prints an aligned human-readable summary, WriteJSON a machine-readable
// Document stamped with search statistics and the host's SysInfo, and WriteMatrix the
// center × client cost matrix.
package report
