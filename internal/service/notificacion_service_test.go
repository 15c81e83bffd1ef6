package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/dto"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/model"
)

// ── Auxiliares de pruebas ──

var instanteRef = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func setupTestNotificacionService() (*notificacionService, *entornoPruebas) {
	e := nuevoEntornoPruebas()
	svc := NewNotificacionService(e.repo, zap.NewNop()).(*notificacionService)
	svc.ahora = func() time.Time { return instanteRef }
	return svc, e
}

func sembrarNotificacion(e *entornoPruebas, usuarioID uint, fecha time.Time, leida bool, prioridad string) *model.Notificacion {
	n := &model.Notificacion{
		UsuarioID:         usuarioID,
		Titulo:            "Aviso",
		Mensaje:           "Contenido del aviso",
		Tipo:              model.TipoNotifRecordatorioComentario,
		Leida:             leida,
		FechaNotificacion: fecha,
		Prioridad:         prioridad,
		CreatedAt:         fecha,
	}
	_ = e.notifs.Create(context.Background(), n)
	return n
}

// ── Partición activa/programada ──

func TestNotificacionService_ListarActivas_ExcluyeProgramadas(t *testing.T) {
	svc, e := setupTestNotificacionService()

	visible := sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)
	sembrarNotificacion(e, 1, instanteRef.Add(48*time.Hour), false, model.PrioridadNormal)
	sembrarNotificacion(e, 2, instanteRef.Add(-time.Hour), false, model.PrioridadNormal) // de otro usuario

	items, total, meta, err := svc.ListarActivas(context.Background(), 1, &dto.ListarNotificacionesRequest{})
	if err != nil {
		t.Fatalf("ListarActivas debería funcionar: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("esperada 1 notificación activa, total=%d items=%d", total, len(items))
	}
	if items[0].ID != visible.NotificacionID {
		t.Errorf("esperada la notificación %d, obtenida %d", visible.NotificacionID, items[0].ID)
	}
	if meta.NoLeidas != 1 {
		t.Errorf("esperada 1 no leída en meta, obtenidas %d", meta.NoLeidas)
	}
}

func TestNotificacionService_MismaFilaCambiaDeVistaConElTiempo(t *testing.T) {
	svc, e := setupTestNotificacionService()

	// Programada: visible dentro de 24 horas.
	n := sembrarNotificacion(e, 1, instanteRef.Add(24*time.Hour), false, model.PrioridadNormal)

	_, totalActivas, _, err := svc.ListarActivas(context.Background(), 1, &dto.ListarNotificacionesRequest{})
	if err != nil {
		t.Fatalf("ListarActivas debería funcionar: %v", err)
	}
	if totalActivas != 0 {
		t.Fatalf("antes de su fecha no debería aparecer como activa, total=%d", totalActivas)
	}

	// El mero paso del tiempo la convierte en activa, sin ninguna escritura.
	svc.ahora = func() time.Time { return instanteRef.Add(48 * time.Hour) }

	items, totalActivas, _, err := svc.ListarActivas(context.Background(), 1, &dto.ListarNotificacionesRequest{})
	if err != nil {
		t.Fatalf("ListarActivas debería funcionar: %v", err)
	}
	if totalActivas != 1 || items[0].ID != n.NotificacionID {
		t.Errorf("pasada su fecha debería aparecer como activa, total=%d", totalActivas)
	}
}

func TestNotificacionService_ListarProgramadas_OrdenYVentanas(t *testing.T) {
	svc, e := setupTestNotificacionService()

	lejana := sembrarNotificacion(e, 1, instanteRef.AddDate(0, 0, 20), false, model.PrioridadNormal)
	cercana := sembrarNotificacion(e, 1, instanteRef.Add(2*time.Hour), false, model.PrioridadNormal)
	sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal) // ya activa

	items, total, resumen, err := svc.ListarProgramadas(context.Background(), 1, &dto.ListarProgramadasRequest{})
	if err != nil {
		t.Fatalf("ListarProgramadas debería funcionar: %v", err)
	}
	if total != 2 {
		t.Fatalf("esperadas 2 programadas, total=%d", total)
	}
	// Orden ascendente por fecha de visibilidad.
	if items[0].ID != cercana.NotificacionID || items[1].ID != lejana.NotificacionID {
		t.Errorf("orden inesperado: %d, %d", items[0].ID, items[1].ID)
	}
	if resumen.Total != 2 || resumen.Hoy != 1 || resumen.Proximos7Dias != 1 || resumen.Proximos30Dias != 2 {
		t.Errorf("resumen de ventanas inesperado: %+v", resumen)
	}
}

// ── ContarNoLeidas ──

func TestNotificacionService_ContarNoLeidas_DesglosePorPrioridad(t *testing.T) {
	svc, e := setupTestNotificacionService()

	sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadAlta)
	sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)
	sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), true, model.PrioridadNormal)    // leída
	sembrarNotificacion(e, 1, instanteRef.Add(time.Hour), false, model.PrioridadNormal)    // programada
	sembrarNotificacion(e, 2, instanteRef.Add(-time.Hour), false, model.PrioridadUrgente)  // de otro usuario

	resp, err := svc.ContarNoLeidas(context.Background(), 1)
	if err != nil {
		t.Fatalf("ContarNoLeidas debería funcionar: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("esperadas 2 no leídas, obtenidas %d", resp.Total)
	}
	if resp.PorPrioridad[model.PrioridadAlta] != 1 || resp.PorPrioridad[model.PrioridadNormal] != 1 {
		t.Errorf("desglose inesperado: %v", resp.PorPrioridad)
	}
}

// ── MarcarLeida ──

func TestNotificacionService_MarcarLeida_Success(t *testing.T) {
	svc, e := setupTestNotificacionService()

	n := sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)

	resp, err := svc.MarcarLeida(context.Background(), n.NotificacionID, 1)
	if err != nil {
		t.Fatalf("MarcarLeida debería funcionar: %v", err)
	}
	if !resp.Notificacion.Leida {
		t.Error("la notificación debería quedar leída")
	}
	if resp.Notificacion.FechaLectura == nil || !resp.Notificacion.FechaLectura.Equal(instanteRef) {
		t.Errorf("fecha de lectura inesperada: %v", resp.Notificacion.FechaLectura)
	}
	if resp.NoLeidas != 0 {
		t.Errorf("esperadas 0 no leídas tras marcar, obtenidas %d", resp.NoLeidas)
	}
}

func TestNotificacionService_MarcarLeida_SegundaLlamadaNoOp(t *testing.T) {
	svc, e := setupTestNotificacionService()

	n := sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)

	if _, err := svc.MarcarLeida(context.Background(), n.NotificacionID, 1); err != nil {
		t.Fatalf("primera llamada debería funcionar: %v", err)
	}
	fechaPrimera := *e.notifs.notifs[n.NotificacionID].FechaLectura

	// La segunda llamada no reescribe la fecha de lectura.
	svc.ahora = func() time.Time { return instanteRef.Add(time.Hour) }
	resp, err := svc.MarcarLeida(context.Background(), n.NotificacionID, 1)
	if err != nil {
		t.Fatalf("segunda llamada debería ser no-op, no error: %v", err)
	}
	if !resp.Notificacion.FechaLectura.Equal(fechaPrimera) {
		t.Errorf("la fecha de lectura no debe cambiar: %v != %v", resp.Notificacion.FechaLectura, fechaPrimera)
	}
}

func TestNotificacionService_MarcarLeida_ProgramadaNoVisible(t *testing.T) {
	svc, e := setupTestNotificacionService()

	// Las programadas no son accionables hasta hacerse visibles.
	n := sembrarNotificacion(e, 1, instanteRef.Add(24*time.Hour), false, model.PrioridadNormal)

	_, err := svc.MarcarLeida(context.Background(), n.NotificacionID, 1)
	if !errors.Is(err, ErrNotificacionNoEncontrada) {
		t.Errorf("esperado ErrNotificacionNoEncontrada, obtenido: %v", err)
	}
}

func TestNotificacionService_MarcarLeida_DeOtroUsuario(t *testing.T) {
	svc, e := setupTestNotificacionService()

	// La falta de pertenencia se reporta como inexistencia, no como prohibición.
	n := sembrarNotificacion(e, 2, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)

	_, err := svc.MarcarLeida(context.Background(), n.NotificacionID, 1)
	if !errors.Is(err, ErrNotificacionNoEncontrada) {
		t.Errorf("esperado ErrNotificacionNoEncontrada, obtenido: %v", err)
	}
}

// ── MarcarTodasLeidas ──

func TestNotificacionService_MarcarTodasLeidas(t *testing.T) {
	svc, e := setupTestNotificacionService()

	sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)
	sembrarNotificacion(e, 1, instanteRef.Add(-2*time.Hour), false, model.PrioridadAlta)
	programada := sembrarNotificacion(e, 1, instanteRef.Add(24*time.Hour), false, model.PrioridadNormal)

	resp, err := svc.MarcarTodasLeidas(context.Background(), 1)
	if err != nil {
		t.Fatalf("MarcarTodasLeidas debería funcionar: %v", err)
	}
	if resp.Afectadas != 2 {
		t.Errorf("esperadas 2 afectadas, obtenidas %d", resp.Afectadas)
	}
	// Las programadas no se tocan: seguirán no leídas cuando se hagan visibles.
	if e.notifs.notifs[programada.NotificacionID].Leida {
		t.Error("una programada no debe marcarse como leída")
	}

	// Repetir con todo ya leído es un resultado válido, no un error.
	resp, err = svc.MarcarTodasLeidas(context.Background(), 1)
	if err != nil {
		t.Fatalf("repetición debería funcionar: %v", err)
	}
	if resp.Afectadas != 0 {
		t.Errorf("esperadas 0 afectadas en la repetición, obtenidas %d", resp.Afectadas)
	}
}

// ── Eliminar ──

func TestNotificacionService_Eliminar_Success(t *testing.T) {
	svc, e := setupTestNotificacionService()

	n := sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)

	resp, err := svc.Eliminar(context.Background(), n.NotificacionID, 1)
	if err != nil {
		t.Fatalf("Eliminar debería funcionar: %v", err)
	}
	if resp.NoLeidas != 0 {
		t.Errorf("esperadas 0 no leídas tras borrar, obtenidas %d", resp.NoLeidas)
	}

	guardada := e.notifs.notifs[n.NotificacionID]
	if !guardada.DeletedAt.Valid {
		t.Error("el borrado debe ser lógico, no físico")
	}
	if guardada.DeletedBy == nil || *guardada.DeletedBy != 1 {
		t.Error("el borrado debe registrar quién lo hizo")
	}
}

func TestNotificacionService_Eliminar_YaBorradaEsNoOp(t *testing.T) {
	svc, e := setupTestNotificacionService()

	n := sembrarNotificacion(e, 1, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)

	if _, err := svc.Eliminar(context.Background(), n.NotificacionID, 1); err != nil {
		t.Fatalf("primer borrado debería funcionar: %v", err)
	}
	if _, err := svc.Eliminar(context.Background(), n.NotificacionID, 1); err != nil {
		t.Errorf("borrar una ya borrada debe ser no-op, no error: %v", err)
	}
}

func TestNotificacionService_Eliminar_Inexistente(t *testing.T) {
	svc, _ := setupTestNotificacionService()

	_, err := svc.Eliminar(context.Background(), 999, 1)
	if !errors.Is(err, ErrNotificacionNoEncontrada) {
		t.Errorf("esperado ErrNotificacionNoEncontrada, obtenido: %v", err)
	}
}

func TestNotificacionService_Eliminar_DeOtroUsuario(t *testing.T) {
	svc, e := setupTestNotificacionService()

	n := sembrarNotificacion(e, 2, instanteRef.Add(-time.Hour), false, model.PrioridadNormal)

	_, err := svc.Eliminar(context.Background(), n.NotificacionID, 1)
	if !errors.Is(err, ErrNotificacionNoEncontrada) {
		t.Errorf("esperado ErrNotificacionNoEncontrada, obtenido: %v", err)
	}
	if e.notifs.notifs[n.NotificacionID].DeletedAt.Valid {
		t.Error("la notificación ajena no debe tocarse")
	}
}
