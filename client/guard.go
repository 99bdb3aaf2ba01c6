package client

// AnonymousOnly guards routes that only make sense for signed-out users, such
// as the login and signup forms. A signed-in user is bounced to the root route
// and the navigation is refused.
func AnonymousOnly(session *SessionStore) func() bool {
	return func() bool {
		if session.IsLoggedIn() {
			if session.Navigate != nil {
				session.Navigate(RouteRoot)
			}
			return false
		}
		return true
	}
}
