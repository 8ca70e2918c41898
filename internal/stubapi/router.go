package stubapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront-cart/internal/domain"
)

var errQuantity = errors.New("quantity must be positive")

// BuildRouter wires the stub storefront routes. Exported so e2e tests can
// mount the router on httptest directly.
func BuildRouter(logger *log.Logger, store *Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/login", loginHandler(store))

	authed := router.Group("/", bearerAuth(store))
	authed.GET("/cart", getCartHandler(store))
	authed.POST("/cart/items", addItemHandler(store))
	authed.DELETE("/cart/items", removeItemsHandler(store))
	authed.PATCH("/cart/items", updateQuantityHandler(store))

	return router
}

// bearerAuth rejects requests without a token issued by /login.
func bearerAuth(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix || !store.Authenticated(header[len(prefix):]) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set("token", header[len(prefix):])
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	return c.GetString("token")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": store.Login()})
	}
}

// cartEntry mirrors the nested wire shape the real storefront responds with.
type cartEntry struct {
	Item     domain.CartItem `json:"item"`
	Quantity int             `json:"quantity"`
}

type cartResponse struct {
	CartItems  []cartEntry `json:"cart_items"`
	TotalPrice string      `json:"total_price"`
}

func renderCart(store *Store, token string) cartResponse {
	items, quantities, total := store.Cart(token)
	entries := make([]cartEntry, len(items))
	for i := range items {
		entries[i] = cartEntry{Item: items[i], Quantity: quantities[i]}
	}
	return cartResponse{CartItems: entries, TotalPrice: total.StringFixed(2)}
}

func getCartHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, renderCart(store, tokenFrom(c)))
	}
}

type addItemsRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required"`
}

func addItemHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.ItemIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item_ids required"})
			return
		}
		token := tokenFrom(c)
		for _, id := range req.ItemIDs {
			if err := store.AddItem(token, id); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, renderCart(store, token))
	}
}

func removeItemsHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.ItemIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item_ids required"})
			return
		}
		store.RemoveItems(tokenFrom(c), req.ItemIDs)
		c.Status(http.StatusNoContent)
	}
}

type updateQuantityRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

func updateQuantityHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and quantity required"})
			return
		}
		token := tokenFrom(c)
		if err := store.SetQuantity(token, req.ItemID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			case errors.Is(err, errQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, renderCart(store, token))
	}
}
