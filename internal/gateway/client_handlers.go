package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/censudex/internal/dto"
)

// handleCreateClient はクライアントを作成するハンドラを返す。
func (s *Server) handleCreateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateClient
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		result, err := s.backends.Identity.CreateUser(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// handleListClients はクライアント一覧を返すハンドラを返す。
func (s *Server) handleListClients() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter dto.ClientFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		clients, err := s.backends.Identity.GetUsers(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ClientList{Users: clients})
	}
}

// handleGetClient はID指定でクライアントを返すハンドラを返す。
func (s *Server) handleGetClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		client, err := s.backends.Identity.GetUserByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

// handleUpdateClient はクライアントを更新するハンドラを返す。
func (s *Server) handleUpdateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateClient
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		result, err := s.backends.Identity.UpdateUser(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// handleDeleteClient はクライアントを削除するハンドラを返す。
func (s *Server) handleDeleteClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.backends.Identity.DeleteUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
