package server

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"

	awsAuth "github.com/teamly-app/teamly-server/internal/aws/auth"
	"github.com/teamly-app/teamly-server/internal/aws/notification"
	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/friendship"
	"github.com/teamly-app/teamly-server/internal/match"
	"github.com/teamly-app/teamly-server/internal/schedule"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

type server struct {
	address  string
	config   Config
	upgrader websocket.Upgrader

	cognitoPublicKeys map[string]*rsa.PublicKey

	storageClient *storage.Client
	notiClient    *notification.Client
	reconciler    *friendship.Reconciler
	matches       *match.Service
	partitioner   *schedule.Partitioner
	hub           *hub
}

func NewServer() *server {
	cfg := NewConfig()
	tokenSigningKeyUrl := fmt.Sprintf(
		"https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
		cfg.AwsRegion,
		cfg.CognitoUserPoolId,
	)
	cognitoPublicKeys, err := awsAuth.LoadCognitoPublicKeys(tokenSigningKeyUrl)
	if err != nil {
		panic(err)
	}

	loc, err := time.LoadLocation(cfg.VenueTimezone)
	if err != nil {
		panic(fmt.Errorf("invalid venue timezone: %w", err))
	}

	awsCfg, _ := awsConfig.LoadDefaultConfig(context.TODO())
	storageClient := storage.NewClient(dynamodb.NewFromConfig(awsCfg))

	srv := &server{
		address: "0.0.0.0:" + cfg.Port,
		config:  cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		cognitoPublicKeys: cognitoPublicKeys,
		storageClient:     storageClient,
		notiClient:        notification.NewClient(sns.NewFromConfig(awsCfg)),
		reconciler:        friendship.NewReconciler(storageClient),
		matches:           match.NewService(storageClient, loc),
		partitioner:       schedule.NewPartitioner(loc),
		hub:               newHub(),
	}
	return srv
}

// Start wires the routes and serves until the listener fails.
func (s *server) Start() error {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	router.HandleFunc("/matches", s.withAuth(s.handleMatchList)).Methods(http.MethodGet)
	router.HandleFunc("/matches", s.withAuth(s.handleMatchCreate)).Methods(http.MethodPost)
	router.HandleFunc("/matches/{id}/rsvp", s.withAuth(s.handleMatchJoin)).Methods(http.MethodPost)
	router.HandleFunc("/matches/{id}/rsvp", s.withAuth(s.handleMatchLeave)).Methods(http.MethodDelete)

	router.HandleFunc("/users/{id}", s.withAuth(s.handleUserGet)).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/relationship", s.withAuth(s.handleRelationshipGet)).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/friend-request", s.withAuth(s.handleFriendRequest)).Methods(http.MethodPost)

	router.HandleFunc("/notifications", s.withAuth(s.handleNotificationList)).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{id}/respond", s.withAuth(s.handleFriendRespond)).Methods(http.MethodPost)

	router.HandleFunc("/colleges", s.withAuth(s.handleCollegeList)).Methods(http.MethodGet)
	router.HandleFunc("/colleges/{id}/join", s.withAuth(s.handleCollegeJoin)).Methods(http.MethodPost)

	router.HandleFunc("/ws", s.handleNotificationStream)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	httpServer := &http.Server{
		Addr:        s.address,
		Handler:     corsHandler,
		IdleTimeout: s.config.IdleTimeout,
	}

	logging.Info("api server started", zap.String("port", s.config.Port))
	return httpServer.ListenAndServe()
}

// auth validates the bearer token and returns the caller's user id.
func (s *server) auth(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	issuer := fmt.Sprintf(
		"https://cognito-idp.%s.amazonaws.com/%s",
		s.config.AwsRegion,
		s.config.CognitoUserPoolId,
	)
	return awsAuth.ValidateJWT(token, issuer, s.cognitoPublicKeys)
}

func (s *server) withAuth(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, err := s.auth(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}
		next(w, r, userId)
	}
}

// handleNotificationStream upgrades to a websocket and keeps the
// connection registered with the hub until the peer goes away.
func (s *server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	userId, err := s.auth(r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(err.Error()))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	s.hub.add(userId, conn)
	defer s.hub.remove(userId, conn)
	logging.Info("notification stream opened", zap.String("user_id", userId))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logging.Info("notification stream closed",
				zap.String("user_id", userId),
				zap.Error(err),
			)
			return
		}
	}
}
