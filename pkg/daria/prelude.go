// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package daria

// DefaultPrelude defines the boolean connectives over :true and :false.
const DefaultPrelude = `; and, or, xor, not
and :true :true = :true
and _ _ = :false

or :false :false = :false
or _ _ = :true

xor :true :false = :true
xor :false :true = :true
xor _ _ = :false

not :true = :false
not :false = :true
`
