package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/todo-backend/internal/api"
	"github.com/St1cky1/todo-backend/internal/infrastructure/client"
	"github.com/St1cky1/todo-backend/internal/repository"
	"github.com/St1cky1/todo-backend/internal/usecase"
	"github.com/St1cky1/todo-backend/internal/worker"
)

func main() {
	var wg sync.WaitGroup

	databaseURL := os.Getenv("DATABASE_URL")
	rabbitMQURL := os.Getenv("RABBITMQ_URL")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// Подключаемся к MongoDB: отсутствие базы не валит процесс,
	// состояние видно на /test
	mongo := client.NewMongoClient(databaseURL)
	defer mongo.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := mongo.HealthCheck(pingCtx); err != nil {
		log.Printf("❌ База данных недоступна: %v", err)
	} else {
		fmt.Println("✅ Подключение к БД установлено")
	}
	pingCancel()

	// Подключаемся к RabbitMQ: без брокера аудит просто выключен
	var rabbitMQ *client.RabbitMQClient
	if rabbitMQURL != "" {
		var err error
		rabbitMQ, err = client.NewRabbitMQClient(rabbitMQURL)
		if err != nil {
			log.Printf("⚠️  RabbitMQ недоступен, аудит выключен: %v", err)
			rabbitMQ = nil
		} else {
			defer rabbitMQ.Close()
			fmt.Println("✅ Подключение к RabbitMQ установлено")
		}
	} else {
		log.Println("⚠️  RABBITMQ_URL не задан, аудит выключен")
	}

	// Инициализируем репозитории
	taskRepo := repository.NewTaskRepository(mongo)
	taskAuditRepo := repository.NewTaskAuditRepository(mongo)

	// Инициализируем сервис
	var publisher usecase.RabbitMQPublisher
	if rabbitMQ != nil {
		publisher = rabbitMQ
	}
	taskService := usecase.NewTaskService(taskRepo, taskAuditRepo, publisher)

	// Запускаем воркер для обработки аудит-сообщений
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if rabbitMQ != nil {
		auditWorker := worker.NewAuditWorker(rabbitMQURL, taskAuditRepo)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Println("Запуск Audit Worker...")
			auditWorker.Start(workerCtx)
		}()
	}

	// Запускаем HTTP сервер
	router := api.NewRouter(taskService, mongo)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Printf("Запуск HTTP сервера на порту %s...\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	}()

	fmt.Println("✅ Сервис готов к работе!")
	fmt.Printf(" API: http://localhost:%s/api/tasks\n", port)
	fmt.Printf(" Диагностика: http://localhost:%s/test\n", port)
	fmt.Println("Для остановки нажмите Ctrl+C")

	// Ждем сигнал завершения
	waitForShutdown(srv, workerCancel)
	wg.Wait()
	fmt.Println("✅ Приложение завершено корректно")
}

func waitForShutdown(srv *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	fmt.Println("Завершение работы...")

	// Останавливаем HTTP сервер с таймаутом
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP сервера: %v", err)
	}

	// Останавливаем воркер
	workerCancel()
}
