// Original work Copyright 2018 Drone.IO Inc.
// Modified work Copyright 2019 Laszlo Fogas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"context"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"

	"github.com/octodash/octodash/pkg/dashboard/model"
	"github.com/octodash/octodash/pkg/dashboard/store"
)

// CookieName carries the session id, and only the session id. The access
// token stays server-side.
const CookieName = "user_sess"

// SetUser resolves the session cookie against the session store and puts the
// live session on the request context. Requests without a valid session pass
// through untouched.
func SetUser() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionStore := ctx.Value("store").(store.SessionStore)
			codec := ctx.Value("sessionCodec").(*securecookie.SecureCookie)

			if cookie, err := r.Cookie(CookieName); err == nil {
				var id string
				if err := codec.Decode(CookieName, cookie.Value, &id); err != nil {
					logrus.Warnf("could not decode session cookie: %s", err)
				} else if s := sessionStore.Get(id); s != nil {
					r = r.WithContext(context.WithValue(ctx, "session", s))
				}
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// MustUser makes sure there is an authenticated session set
func MustUser() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			_, sessionSet := ctx.Value("session").(*model.Session)
			if !sessionSet {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			} else {
				next.ServeHTTP(w, r)
			}
		}
		return http.HandlerFunc(fn)
	}
}
