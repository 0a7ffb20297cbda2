// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"fmt"
	"io"
)

// writeLogRecord appends a single diagnostic line to sink, followed by a
// blank-line separator, per the log sink contract in §6: one record per
// line, no schema stability promised.
func writeLogRecord(sink io.Writer, r logRecord) error {
	_, err := fmt.Fprintf(sink, "%s\n\n", r.String())
	return err
}
