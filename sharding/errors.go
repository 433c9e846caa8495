/*
 * Radon
 *
 * Copyright 2021 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package sharding

import (
	"github.com/pkg/errors"
)

var (
	// ErrIncompatibleValues is the cause of a type mismatch between the
	// values constraining one sharding column.
	ErrIncompatibleValues = errors.New("sharding.values.are.incompatible")

	// ErrNullShardingValue is the cause of a NULL sharding value on INSERT.
	ErrNullShardingValue = errors.New("sharding.value.can.not.be.null")

	// ErrUnsupportedShardingValue is the cause of a sharding value that is not
	// a literal where a literal is required.
	ErrUnsupportedShardingValue = errors.New("sharding.value.must.be.literal")
)
