// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"context"

	"github.com/dolthub/go-mongo-compiler/compileropts"
	"github.com/dolthub/go-mongo-compiler/internal/regex"
	"github.com/dolthub/go-mongo-compiler/logical"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Compile lowers sel to a LogicalPlan under opts. A panic inside the
// pipeline (an internal invariant violation, never a user-facing error
// in the taxonomy the resolve/expr errors belong to) is recovered and
// reported with a stack trace attached via pkg/errors, instead of
// crashing the caller.
func Compile(ctx context.Context, sel *Select, opts compileropts.Options, log *logrus.Entry) (plan logical.Plan, err error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "compiler.Compile")
	defer span.Finish()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(errFromRecover(r), "compiler: internal error compiling SELECT")
		}
	}()

	if opts.RegexEngine != "" {
		regex.SetDefault(opts.RegexEngine)
	}

	st := NewState(opts, log)
	p, err := st.CompileSelect(sel)
	if err != nil {
		return logical.Plan{}, err
	}
	return simplify(p), nil
}

func errFromRecover(r interface{}) error {
	if e, ok := r.(error); ok {
		return e
	}
	return errors.Errorf("%v", r)
}
