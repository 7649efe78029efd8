package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/auth"
	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/uploads"
)

// maxUploadBytes límite del archivo de carga (10 MB).
const maxUploadBytes = 10 << 20

// UploadHandler carga de archivos financieros y su historial.
type UploadHandler struct {
	uc     *uploads.UploadUseCase
	authUC *auth.AuthUseCase
}

// NewUploadHandler construye el handler de cargas.
func NewUploadHandler(uc *uploads.UploadUseCase, authUC *auth.AuthUseCase) *UploadHandler {
	return &UploadHandler{uc: uc, authUC: authUC}
}

// Import godoc
// @Summary      Cargar archivo financiero de un módulo y período
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        module     path      string  true   "balance-sheet | cash-flow | membership-fees | ratios"
// @Param        file       formData  file    true   "archivo CSV o XLSX"
// @Param        year       formData  int     true   "año del período"
// @Param        month      formData  int     true   "mes del período"
// @Param        overwrite  formData  bool    false  "sobrescribir si el período ya tiene datos"
// @Success      200  {object}  dto.Envelope{data=dto.UploadResultDTO}
// @Failure      400  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/upload/{module} [post]
func (h *UploadHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "archivo requerido (campo file)")
	}
	if fileHeader.Size > maxUploadBytes {
		return badRequest(c, "el archivo supera el límite de 10 MB")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}

	user, err := h.authUC.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.uc.Import(c.Context(), uploads.ImportInput{
		CooperativeID: resolveCooperativeID(c),
		UserID:        GetUserID(c),
		UserName:      user.Name,
		Module:        c.Params("module"),
		FileName:      fileHeader.Filename,
		Year:          formInt(c, "year"),
		Month:         formInt(c, "month"),
		Overwrite:     c.FormValue("overwrite") == "true",
		Content:       content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage(result, result.Message))
}

// History devuelve las últimas cargas de la cooperativa.
func (h *UploadHandler) History(c *fiber.Ctx) error {
	records, err := h.uc.History(c.Context(), resolveCooperativeID(c), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(records))
}

// Latest devuelve la última carga exitosa por módulo.
func (h *UploadHandler) Latest(c *fiber.Ctx) error {
	latest, err := h.uc.Latest(c.Context(), resolveCooperativeID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(latest))
}

func formInt(c *fiber.Ctx, key string) int {
	n, _ := strconv.Atoi(c.FormValue(key))
	return n
}
