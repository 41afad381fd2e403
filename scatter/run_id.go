// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import "github.com/gofrs/uuid"

// RunID uniquely identifies one invocation of RunPlan, for correlating
// emitted events and placements with external logs or job records.
type RunID uuid.UUID

// NewRunID generates a fresh random RunID.
func NewRunID() RunID {
	return RunID(uuid.Must(uuid.NewV4()))
}

func (id RunID) String() string {
	return uuid.UUID(id).String()
}
