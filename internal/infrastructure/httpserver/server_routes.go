package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readyCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	v1 := s.echo.Group("/v1")
	v1.GET("/trips/search", s.searchTrips)
	v1.POST("/users", s.registerUser)

	me := v1.Group("/me")
	me.Use(s.middleware.Auth.RequireAuth())
	me.GET("/profile", s.getOwnProfile)
	me.GET("/saved-trips", s.listSavedTrips)
	me.POST("/saved-trips", s.saveTrip)
	me.DELETE("/saved-trips/:tripId", s.deleteSavedTrip)
}
